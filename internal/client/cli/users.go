package cli

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/useradmin/internal/client/api"
	"github.com/dmitrijs2005/useradmin/internal/client/validation"
	"github.com/dmitrijs2005/useradmin/internal/client/viewmodel"
)

// parseFilters turns REPL arguments like "name=ann minage=18 active=true"
// into a UserFilters value. Absent keys stay nil: no constraint.
func parseFilters(args []string) (api.UserFilters, error) {
	var f api.UserFilters
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(key) {
		case "name":
			v := value
			f.Name = &v
		case "minage":
			n, err := strconv.Atoi(value)
			if err != nil {
				return f, fmt.Errorf("invalid minage %q", value)
			}
			f.MinAge = &n
		case "maxage":
			n, err := strconv.Atoi(value)
			if err != nil {
				return f, fmt.Errorf("invalid maxage %q", value)
			}
			f.MaxAge = &n
		case "active":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return f, fmt.Errorf("invalid active %q", value)
			}
			f.Active = &b
		default:
			return f, fmt.Errorf("unknown filter %q", key)
		}
	}
	return f, nil
}

func (a *App) printUsers(users []api.User) {
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users found")
		return
	}
	fmt.Fprintf(a.out, "%-6s %-25s %-30s %-5s %-8s\n", "ID", "NAME", "EMAIL", "AGE", "STATUS")
	for _, u := range users {
		status := "active"
		if !u.Active {
			status = "inactive"
		}
		fmt.Fprintf(a.out, "%-6d %-25s %-30s %-5d %-8s\n", u.ID, u.Name, u.Email, u.Age, status)
	}
}

// List shows users, optionally constrained by filters given as
// "name=… minage=… maxage=… active=…" arguments.
func (a *App) List(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	filters, err := parseFilters(args)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	users, err := a.store.Users(ctx, filters)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	a.printUsers(users)
	if viewmodel.HasActiveFilters(filters) {
		fmt.Fprintf(a.out, "(filters applied: %s; run 'list' to clear)\n", filters.String())
	}
	return nil
}

// Get shows a single user in detail.
func (a *App) Get(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "Usage: get <id>")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	u, err := a.store.User(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	fmt.Fprintf(a.out, "ID:      %d\n", u.ID)
	fmt.Fprintf(a.out, "Name:    %s\n", u.Name)
	fmt.Fprintf(a.out, "Email:   %s\n", u.Email)
	if u.Phone != "" {
		fmt.Fprintf(a.out, "Phone:   %s\n", u.Phone)
	}
	fmt.Fprintf(a.out, "Age:     %d\n", u.Age)
	fmt.Fprintf(a.out, "Active:  %t\n", u.Active)
	fmt.Fprintf(a.out, "Created: %s\n", u.CreatedAt)
	if u.UpdatedAt != "" {
		fmt.Fprintf(a.out, "Updated: %s\n", u.UpdatedAt)
	}
	return nil
}

// promptUserForm collects the user form, starting from defaults. Empty
// input keeps the default value. The form is validated before being
// returned; any field error blocks submission.
func (a *App) promptUserForm(defaults api.CreateUserRequest) (api.CreateUserRequest, error) {
	form := defaults

	name, err := getSimpleText(a.reader, fmt.Sprintf("Name [%s]", defaults.Name), a.out)
	if err != nil {
		return form, err
	}
	if name != "" {
		form.Name = name
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Email [%s]", defaults.Email), a.out)
	if err != nil {
		return form, err
	}
	if email != "" {
		form.Email = email
	}

	phone, err := getSimpleText(a.reader, fmt.Sprintf("Phone (optional) [%s]", defaults.Phone), a.out)
	if err != nil {
		return form, err
	}
	if phone != "" {
		form.Phone = phone
	}

	age, err := GetInt(a.reader, "Age", defaults.Age, a.out)
	if err != nil {
		return form, err
	}
	form.Age = age

	active, err := GetBool(a.reader, "Active", defaults.Active, a.out)
	if err != nil {
		return form, err
	}
	form.Active = active

	if errs := validation.ValidateUserForm(form); len(errs) > 0 {
		for field, msg := range errs {
			fmt.Fprintf(a.out, "  %s: %s\n", field, msg)
		}
		return form, fmt.Errorf("form has %d invalid field(s)", len(errs))
	}
	return form, nil
}

// Create collects a new user form and submits it.
func (a *App) Create(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	form, err := a.promptUserForm(api.CreateUserRequest{Active: true})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.store.CreateUser(ctx, form); err != nil {
		return err
	}
	return nil
}

// Update edits an existing user. Current values are offered as defaults.
func (a *App) Update(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "Usage: update <id>")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	current, err := a.store.User(ctx, id)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	form, err := a.promptUserForm(api.CreateUserRequest{
		Name:   current.Name,
		Email:  current.Email,
		Phone:  current.Phone,
		Age:    current.Age,
		Active: current.Active,
	})
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	if _, err := a.store.UpdateUser(ctx, id, form); err != nil {
		return err
	}
	return nil
}

// Delete removes a user after confirmation.
func (a *App) Delete(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "Usage: delete <id>")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}

	confirmed, err := GetBool(a.reader, fmt.Sprintf("Delete user %d?", id), false, a.out)
	if err != nil {
		return err
	}
	if !confirmed {
		printlnFn("Canceled")
		return nil
	}

	return a.store.DeleteUser(ctx, id)
}

// Activate marks a user active.
func (a *App) Activate(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "Usage: activate <id>")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	_, err = a.store.ActivateUser(ctx, id)
	return err
}

// Deactivate marks a user inactive.
func (a *App) Deactivate(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	id, err := parseID(args, "Usage: deactivate <id>")
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	_, err = a.store.DeactivateUser(ctx, id)
	return err
}

// Active lists only active users.
func (a *App) Active(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	users, err := a.store.ActiveUsers(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.printUsers(users)
	return nil
}

// Inactive lists only inactive users.
func (a *App) Inactive(ctx context.Context) error {
	if !a.requireLogin() {
		return nil
	}
	users, err := a.store.InactiveUsers(ctx)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.printUsers(users)
	return nil
}

// AgeRange lists users within an inclusive age range.
func (a *App) AgeRange(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return nil
	}
	if len(args) != 2 {
		printlnFn("Usage: agerange <min> <max>")
		return fmt.Errorf("usage: agerange <min> <max>")
	}
	minAge, err1 := strconv.Atoi(args[0])
	maxAge, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil {
		return fmt.Errorf("ages must be whole numbers")
	}

	users, err := a.store.UsersByAgeRange(ctx, minAge, maxAge)
	if err != nil {
		log.Printf("error: %v", err)
		return err
	}
	a.printUsers(users)
	return nil
}
