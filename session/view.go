// ABOUTME: Screen enumeration and the rules for moving between screens
// ABOUTME: Invalid moves return InvalidTransitionError and leave the current view unchanged
package session

import (
	"fmt"
)

type View int

const (
	ViewHome View = iota
	ViewCatalog
	ViewCustomize
	ViewLogin
	ViewRegister
	ViewQuotes
)

var viewNames = map[View]string{
	ViewHome:      "home",
	ViewCatalog:   "catalog",
	ViewCustomize: "customize",
	ViewLogin:     "login",
	ViewRegister:  "register",
	ViewQuotes:    "quotes",
}

func (v View) String() string {
	if name, ok := viewNames[v]; ok {
		return name
	}
	return fmt.Sprintf("view(%d)", int(v))
}

// ParseView resolves a view by name.
func ParseView(name string) (View, bool) {
	for v, n := range viewNames {
		if n == name {
			return v, true
		}
	}
	return 0, false
}

// InvalidTransitionError reports a rejected navigation.
type InvalidTransitionError struct {
	From   View
	To     View
	Reason string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot go from %s to %s: %s", e.From, e.To, e.Reason)
}

// Navigate switches to view. Customize must go through Customize so a
// product is always selected; Quotes needs a signed-in viewer; Login and
// Register are only for anonymous viewers.
func (a *App) Navigate(to View) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.checkTransition(to); err != nil {
		return err
	}
	a.view = to
	return nil
}

func (a *App) checkTransition(to View) error {
	reject := func(reason string) error {
		return &InvalidTransitionError{From: a.view, To: to, Reason: reason}
	}

	switch to {
	case ViewHome, ViewCatalog:
		return nil
	case ViewCustomize:
		return reject("choose a product to customize")
	case ViewQuotes:
		if a.viewer == nil {
			return reject("sign in to see your quotes")
		}
		return nil
	case ViewLogin, ViewRegister:
		if a.viewer != nil {
			return reject("already signed in")
		}
		return nil
	default:
		return reject("unknown view")
	}
}

// Customize selects productID for customization, resetting the draft, and
// switches to the customize view.
func (a *App) Customize(productID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	product, ok := a.findProduct(productID)
	if !ok {
		return &InvalidTransitionError{From: a.view, To: ViewCustomize, Reason: fmt.Sprintf("unknown product %q", productID)}
	}
	if !product.Customizable {
		return &InvalidTransitionError{From: a.view, To: ViewCustomize, Reason: fmt.Sprintf("%s is not customizable", product.Name)}
	}

	a.custom.SelectProduct(product)
	a.view = ViewCustomize
	return nil
}
