package query

// Notifier receives fire-and-forget user feedback for mutations. It is UI
// plumbing, not part of the data model; implementations must not block.
type Notifier interface {
	Success(title, detail string)
	Error(title, detail string)
}

// NopNotifier discards all notifications.
type NopNotifier struct{}

func (NopNotifier) Success(title, detail string) {}
func (NopNotifier) Error(title, detail string)   {}
