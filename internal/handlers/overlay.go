package handlers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
)

// Overlay is the single active modal. Exactly one value is current at any
// time; OverlayNone means the plain catalog.
type Overlay string

const (
	OverlayNone        Overlay = ""
	OverlayLogin       Overlay = "login"
	OverlayRegister    Overlay = "register"
	OverlayLoginPrompt Overlay = "loginPrompt"
	OverlayCheckout    Overlay = "checkout"
)

const sessionName = "jetstores-session"

// Browser-session value keys.
const (
	keySessionID       = "sid"
	keyOverlay         = "overlay"
	keySelectedProduct = "selected_product"
	keyCategory        = "category"
	keyQuery           = "q"
	keySort            = "sort"
)

// browserSession returns the gorilla session for this browser, assigning a
// stable UUID id on first contact. The id scopes the durable token cache.
func browserSession(store *sessions.CookieStore, r *http.Request) (*sessions.Session, string) {
	session, _ := store.Get(r, sessionName)
	sid, ok := session.Values[keySessionID].(string)
	if !ok || sid == "" {
		sid = uuid.New().String()
		session.Values[keySessionID] = sid
	}
	return session, sid
}

func currentOverlay(session *sessions.Session) Overlay {
	if v, ok := session.Values[keyOverlay].(string); ok {
		return Overlay(v)
	}
	return OverlayNone
}

func setOverlay(session *sessions.Session, o Overlay) {
	session.Values[keyOverlay] = string(o)
}

func selectedProductID(session *sessions.Session) int {
	if v, ok := session.Values[keySelectedProduct].(int); ok {
		return v
	}
	return 0
}

func setSelectedProduct(session *sessions.Session, id int) {
	session.Values[keySelectedProduct] = id
}

// resetViewState returns the catalog to its initial view: no overlay, no
// remembered product, and cleared filter/sort/search. Used after a
// successful login or register, and on logout.
func resetViewState(session *sessions.Session) {
	setOverlay(session, OverlayNone)
	delete(session.Values, keySelectedProduct)
	delete(session.Values, keyCategory)
	delete(session.Values, keyQuery)
	delete(session.Values, keySort)
}

func sessionString(session *sessions.Session, key string) string {
	if v, ok := session.Values[key].(string); ok {
		return v
	}
	return ""
}
