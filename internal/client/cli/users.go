package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/dmitrijs2005/sessionkeeper/internal/client/client"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/models"
	"github.com/dmitrijs2005/sessionkeeper/internal/client/services"
	"github.com/dmitrijs2005/sessionkeeper/internal/common"
)

// report prints the user-facing message of err. A 401 is left to the
// session watcher, which already tells the user the session expired.
func (a *App) report(err error) {
	if errors.Is(err, client.ErrUnauthorized) {
		return
	}
	fmt.Fprintln(a.out, services.UserMessage(err))
}

func (a *App) Profile(ctx context.Context) error {
	if !a.requireSession(ctx) {
		return nil
	}
	u := a.session.Snapshot().User
	if u == nil {
		return nil
	}

	fmt.Fprintf(a.out, "Name:     %s\nUsername: %s\nAge:      %d\nAddress:  %s\n", u.Name, u.Username, u.Age, u.Address)
	return nil
}

func (a *App) Users(ctx context.Context) error {
	if !a.requireSession(ctx) {
		return nil
	}

	users, err := a.users.List(ctx)
	if err != nil {
		a.report(err)
		return nil
	}
	if len(users) == 0 {
		fmt.Fprintln(a.out, "No users.")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tADDRESS\tUSERNAME")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", u.ID, u.Name, u.Age, u.Address, u.Username)
	}
	return tw.Flush()
}

func (a *App) AddUser(ctx context.Context) error {
	if !a.requireSession(ctx) {
		return nil
	}

	form, err := a.readUserForm(nil)
	if err != nil {
		return err
	}

	if _, err := a.users.Create(ctx, form); err != nil {
		a.report(err)
		return nil
	}
	fmt.Fprintln(a.out, services.MsgUserCreated)
	return nil
}

func (a *App) EditUser(ctx context.Context, args []string) error {
	if !a.requireSession(ctx) {
		return nil
	}

	id, err := a.readID(args)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}

	users, err := a.users.List(ctx)
	if err != nil {
		a.report(err)
		return nil
	}
	var current *models.AppUser
	for i := range users {
		if users[i].ID == id {
			current = &users[i]
			break
		}
	}
	if current == nil {
		fmt.Fprintf(a.out, "User %d not found.\n", id)
		return nil
	}

	form, err := a.readUserForm(current)
	if err != nil {
		return err
	}

	if _, err := a.users.Update(ctx, id, form); err != nil {
		a.report(err)
		return nil
	}
	fmt.Fprintln(a.out, services.MsgUserUpdated)
	return nil
}

func (a *App) DeleteUser(ctx context.Context, args []string) error {
	if !a.requireSession(ctx) {
		return nil
	}

	id, err := a.readID(args)
	if err != nil {
		return err
	}
	if id == 0 {
		return nil
	}

	answer, err := getSimpleText(a.reader, "Delete this user? (y/N)", a.out)
	if err != nil {
		return err
	}
	if answer != "y" && answer != "Y" && answer != "yes" {
		return nil
	}

	if err := a.users.Delete(ctx, id); err != nil {
		a.report(err)
		return nil
	}
	fmt.Fprintln(a.out, services.MsgUserDeleted)
	return nil
}

// readID takes the id from args or asks for it. Zero means the input was
// invalid and has already been reported.
func (a *App) readID(args []string) (int64, error) {
	var raw string
	if len(args) > 0 {
		raw = args[0]
	} else {
		var err error
		if raw, err = getSimpleText(a.reader, "Enter user id", a.out); err != nil {
			return 0, err
		}
	}

	id, err := services.ParseID(raw)
	if err != nil {
		fmt.Fprintln(a.out, services.UserMessage(err))
		return 0, nil
	}
	return id, nil
}

// readUserForm prompts for every user field. With current set, pressing
// Enter keeps the existing value and an empty password keeps the old one.
func (a *App) readUserForm(current *models.AppUser) (services.UserForm, error) {
	var form services.UserForm

	prompt := func(label, keep string) (string, error) {
		if current == nil {
			return getSimpleText(a.reader, "Enter "+label, a.out)
		}
		return getTextOrKeep(a.reader, "Enter "+label, keep, a.out)
	}

	var cur models.AppUser
	if current != nil {
		cur = *current
	}

	var err error
	if form.Name, err = prompt("name", cur.Name); err != nil {
		return form, err
	}
	if form.Age, err = prompt("age", strconv.Itoa(cur.Age)); err != nil {
		return form, err
	}
	if form.Address, err = prompt("address", cur.Address); err != nil {
		return form, err
	}
	if form.Username, err = prompt("username", cur.Username); err != nil {
		return form, err
	}

	if current != nil {
		fmt.Fprintln(a.out, "Leave the password empty to keep the current one.")
	}
	password, err := getPassword(a.out)
	if err != nil {
		return form, err
	}
	form.Password = string(password)
	common.WipeByteArray(password)

	return form, nil
}
