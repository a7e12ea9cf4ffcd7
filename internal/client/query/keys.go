package query

import (
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
)

// Key identifies one cached read: entity category, scope within the
// category, and a canonical parameter string.
type Key struct {
	Category string
	Scope    string
	Params   string
}

func (k Key) String() string {
	return k.Category + "/" + k.Scope + "/" + k.Params
}

const (
	categoryUsers = "users"

	ScopeList     = "list"
	ScopeDetail   = "detail"
	ScopeStats    = "stats"
	ScopeActive   = "active"
	ScopeInactive = "inactive"
)

// collectionScopes are the scopes every successful mutation marks stale.
var collectionScopes = []string{ScopeList, ScopeStats, ScopeActive, ScopeInactive}

func ListKey(f api.UserFilters) Key {
	return Key{Category: categoryUsers, Scope: ScopeList, Params: f.String()}
}

func AgeRangeKey(minAge, maxAge int) Key {
	return Key{Category: categoryUsers, Scope: ScopeList, Params: fmt.Sprintf("ageRange=%d-%d", minAge, maxAge)}
}

func DetailKey(id int64) Key {
	return Key{Category: categoryUsers, Scope: ScopeDetail, Params: strconv.FormatInt(id, 10)}
}

func StatsKey() Key {
	return Key{Category: categoryUsers, Scope: ScopeStats}
}

func ActiveKey() Key {
	return Key{Category: categoryUsers, Scope: ScopeActive}
}

func InactiveKey() Key {
	return Key{Category: categoryUsers, Scope: ScopeInactive}
}
