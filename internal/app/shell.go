// Package app is the shell: it gates everything on session state,
// shows the sign-in view to anonymous users and the dashboard to
// authenticated ones, and reveals the admin actions only to admins.
// Every action failure is printed inline and the loop continues;
// recovery is always user-initiated.
package app

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/sweetshop/sweetshop-client/internal/api"
	"github.com/sweetshop/sweetshop-client/internal/catalog"
	"github.com/sweetshop/sweetshop-client/internal/model"
	"github.com/sweetshop/sweetshop-client/internal/session"
)

// Shell runs the interactive terminal client.
type Shell struct {
	session *session.Store
	api     *api.Client
	catalog *catalog.Catalog
	in      *bufio.Scanner
	out     io.Writer

	// expired is flipped by the REST client's unauthorized hook; the
	// loop checks it each iteration and falls back to sign-in.
	expired atomic.Bool
}

// New wires the shell and installs the global unauthorized hook.
func New(sess *session.Store, client *api.Client, cat *catalog.Catalog, in io.Reader, out io.Writer) *Shell {
	s := &Shell{
		session: sess,
		api:     client,
		catalog: cat,
		in:      bufio.NewScanner(in),
		out:     out,
	}
	client.OnUnauthorized(func() { s.expired.Store(true) })
	return s
}

// Run restores the session and loops between the two top-level views
// until the user quits or input ends.
func (s *Shell) Run(ctx context.Context) error {
	s.session.Restore()
	_, authed := s.session.Identity()
	if authed {
		// Data is pull-based: fetch once on entering the
		// authenticated view. A stale restored token 401s here and
		// tears the session down before anything renders.
		s.run(s.catalog.Refresh(ctx))
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		// The expired notice only makes sense when a session was
		// actually torn down; a 401 on the login call itself is just
		// a failed sign-in.
		if s.expired.Swap(false) && authed {
			fmt.Fprintln(s.out, "Session expired. Please sign in again.")
		}
		if _, ok := s.session.Identity(); !ok {
			authed = false
			if !s.signInView(ctx) {
				return nil
			}
			continue
		}
		authed = true
		if !s.dashboardView(ctx) {
			return nil
		}
	}
}

// ----- sign-in view -----

// signInView handles the unauthenticated entry point. Returns false
// when the user quits or input ends.
func (s *Shell) signInView(ctx context.Context) bool {
	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, "== Sweet Shop ==")
	fmt.Fprintln(s.out, "[1] sign in  [2] register  [q] quit")

	choice, ok := s.prompt("> ")
	if !ok {
		return false
	}
	switch choice {
	case "1":
		s.login(ctx)
	case "2":
		s.registerAccount(ctx)
	case "q":
		return false
	}
	return true
}

func (s *Shell) login(ctx context.Context) {
	username, ok := s.prompt("username: ")
	if !ok {
		return
	}
	password, ok := s.prompt("password: ")
	if !ok {
		return
	}

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.fail(err)
		return
	}
	if err := s.session.Login(resp.Token, resp.User); err != nil {
		s.fail(err)
		return
	}
	if err := s.catalog.Refresh(ctx); err != nil {
		s.fail(err)
		return
	}
	id, _ := s.session.Identity()
	fmt.Fprintf(s.out, "Signed in as %s.\n", id.Username)
}

func (s *Shell) registerAccount(ctx context.Context) {
	username, ok := s.prompt("username: ")
	if !ok {
		return
	}
	email, ok := s.prompt("email: ")
	if !ok {
		return
	}
	password, ok := s.prompt("password: ")
	if !ok {
		return
	}

	if err := s.api.Register(ctx, username, email, password); err != nil {
		s.fail(err)
		return
	}
	fmt.Fprintln(s.out, "Account created. You can sign in now.")
}

// ----- dashboard view -----

// dashboardView renders the catalog and dispatches one command.
// Returns false when the user quits or input ends.
func (s *Shell) dashboardView(ctx context.Context) bool {
	s.renderCatalog()

	fmt.Fprint(s.out, "[r]efresh [s]earch [c]lear filter [p]urchase")
	if s.session.IsAdmin() {
		fmt.Fprint(s.out, " [a]dd [e]dit [d]elete [k] restock")
	}
	fmt.Fprintln(s.out, " [l]ogout [q]uit")

	choice, ok := s.prompt("> ")
	if !ok {
		return false
	}
	switch choice {
	case "r":
		s.run(s.catalog.Refresh(ctx))
	case "s":
		s.searchFlow(ctx)
	case "c":
		s.run(s.catalog.Search(ctx, model.SearchCriteria{}))
	case "p":
		s.purchaseFlow(ctx)
	case "a":
		s.adminOnly(func() { s.addFlow(ctx) })
	case "e":
		s.adminOnly(func() { s.editFlow(ctx) })
	case "d":
		s.adminOnly(func() { s.deleteFlow(ctx) })
	case "k":
		s.adminOnly(func() { s.restockFlow(ctx) })
	case "l":
		s.session.Logout()
		fmt.Fprintln(s.out, "Signed out.")
	case "q":
		return false
	}
	return true
}

// adminOnly guards an admin flow in the UI. The server enforces the
// role again regardless.
func (s *Shell) adminOnly(fn func()) {
	if !s.session.IsAdmin() {
		fmt.Fprintln(s.out, "Admin only.")
		return
	}
	fn()
}

func (s *Shell) renderCatalog() {
	sweets := s.catalog.Sweets()
	stats := s.catalog.Stats()

	fmt.Fprintln(s.out)
	if criteria := s.catalog.ActiveCriteria(); !criteria.IsEmpty() {
		fmt.Fprintf(s.out, "-- catalog (filtered: %s) --\n", criteria.Values().Encode())
	} else {
		fmt.Fprintln(s.out, "-- catalog --")
	}
	if len(sweets) == 0 {
		fmt.Fprintln(s.out, "(no items)")
	}
	for _, sw := range sweets {
		stock := "out of stock"
		if sw.InStock() {
			stock = fmt.Sprintf("%d in stock", sw.Quantity)
		}
		fmt.Fprintf(s.out, "  #%s  %-20s %-12s $%.2f  %s\n", sw.ID, sw.Name, sw.Category, sw.Price, stock)
	}
	fmt.Fprintf(s.out, "items: %d  in stock: %d  inventory value: $%.2f\n", stats.Total, stats.InStock, stats.Value)
}

func (s *Shell) searchFlow(ctx context.Context) {
	name, ok := s.prompt("name contains (empty for any): ")
	if !ok {
		return
	}
	category, ok := s.prompt("category (empty for any): ")
	if !ok {
		return
	}
	minPrice, ok := s.promptOptFloat("min price (empty for none): ")
	if !ok {
		return
	}
	maxPrice, ok := s.promptOptFloat("max price (empty for none): ")
	if !ok {
		return
	}

	s.run(s.catalog.Search(ctx, model.SearchCriteria{
		Name:     name,
		Category: category,
		MinPrice: minPrice,
		MaxPrice: maxPrice,
	}))
}

func (s *Shell) purchaseFlow(ctx context.Context) {
	id, ok := s.prompt("item id: ")
	if !ok {
		return
	}
	qty, ok := s.promptIntDefault("quantity [1]: ", 1)
	if !ok {
		return
	}
	if s.run(s.catalog.Purchase(ctx, id, qty)) {
		fmt.Fprintln(s.out, "Purchased.")
	}
}

func (s *Shell) addFlow(ctx context.Context) {
	in, ok := s.sweetInputFlow(model.SweetInput{})
	if !ok {
		return
	}
	if s.run(s.catalog.Create(ctx, in)) {
		fmt.Fprintln(s.out, "Added.")
	}
}

func (s *Shell) editFlow(ctx context.Context) {
	id, ok := s.prompt("item id: ")
	if !ok {
		return
	}
	current, found := s.findSweet(id)
	if !found {
		fmt.Fprintln(s.out, "No such item in the current list.")
		return
	}
	in, ok := s.sweetInputFlow(model.SweetInput{
		Name:        current.Name,
		Category:    current.Category,
		Price:       current.Price,
		Quantity:    current.Quantity,
		Description: current.Description,
		Image:       current.Image,
	})
	if !ok {
		return
	}
	if s.run(s.catalog.Update(ctx, id, in)) {
		fmt.Fprintln(s.out, "Updated.")
	}
}

func (s *Shell) deleteFlow(ctx context.Context) {
	id, ok := s.prompt("item id: ")
	if !ok {
		return
	}
	if s.run(s.catalog.Delete(ctx, id)) {
		fmt.Fprintln(s.out, "Deleted.")
	}
}

func (s *Shell) restockFlow(ctx context.Context) {
	id, ok := s.prompt("item id: ")
	if !ok {
		return
	}
	qty, ok := s.promptIntDefault("quantity to add: ", 0)
	if !ok {
		return
	}
	if s.run(s.catalog.Restock(ctx, id, qty)) {
		fmt.Fprintln(s.out, "Restocked.")
	}
}

// sweetInputFlow collects item fields, keeping the defaults on empty
// input so edit flows only retype what changes.
func (s *Shell) sweetInputFlow(def model.SweetInput) (model.SweetInput, bool) {
	name, ok := s.promptDefault(fmt.Sprintf("name [%s]: ", def.Name), def.Name)
	if !ok {
		return def, false
	}
	category, ok := s.promptDefault(fmt.Sprintf("category [%s]: ", def.Category), def.Category)
	if !ok {
		return def, false
	}
	price, ok := s.promptFloatDefault(fmt.Sprintf("price [%.2f]: ", def.Price), def.Price)
	if !ok {
		return def, false
	}
	qty, ok := s.promptIntDefault(fmt.Sprintf("quantity [%d]: ", def.Quantity), def.Quantity)
	if !ok {
		return def, false
	}
	description, ok := s.promptDefault("description (optional): ", def.Description)
	if !ok {
		return def, false
	}
	image, ok := s.promptDefault("image URL (optional): ", def.Image)
	if !ok {
		return def, false
	}
	return model.SweetInput{
		Name:        name,
		Category:    category,
		Price:       price,
		Quantity:    qty,
		Description: description,
		Image:       image,
	}, true
}

func (s *Shell) findSweet(id string) (model.Sweet, bool) {
	for _, sw := range s.catalog.Sweets() {
		if sw.ID == id {
			return sw, true
		}
	}
	return model.Sweet{}, false
}

// ----- helpers -----

// run prints an action failure inline and reports success. This is the
// single choke point that keeps failures from escaping the loop.
func (s *Shell) run(err error) bool {
	if err != nil {
		s.fail(err)
		return false
	}
	return true
}

func (s *Shell) fail(err error) {
	msg := api.Message(err)
	if api.IsTransport(err) {
		msg += " (check the connection and try again)"
	}
	fmt.Fprintf(s.out, "Error: %s\n", msg)
}

// prompt reads one trimmed line. The second return is false on EOF.
func (s *Shell) prompt(label string) (string, bool) {
	fmt.Fprint(s.out, label)
	if !s.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(s.in.Text()), true
}

func (s *Shell) promptDefault(label, def string) (string, bool) {
	v, ok := s.prompt(label)
	if !ok {
		return "", false
	}
	if v == "" {
		return def, true
	}
	return v, true
}

func (s *Shell) promptIntDefault(label string, def int) (int, bool) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return 0, false
		}
		if v == "" {
			return def, true
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			fmt.Fprintln(s.out, "Enter a whole number.")
			continue
		}
		return n, true
	}
}

func (s *Shell) promptFloatDefault(label string, def float64) (float64, bool) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return 0, false
		}
		if v == "" {
			return def, true
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Enter a number.")
			continue
		}
		return f, true
	}
}

func (s *Shell) promptOptFloat(label string) (*float64, bool) {
	for {
		v, ok := s.prompt(label)
		if !ok {
			return nil, false
		}
		if v == "" {
			return nil, true
		}
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			fmt.Fprintln(s.out, "Enter a number.")
			continue
		}
		return &f, true
	}
}
