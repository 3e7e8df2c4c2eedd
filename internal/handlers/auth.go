package handlers

import (
	"log/slog"
	"net/http"
	"regexp"
	"unicode"

	"github.com/gorilla/sessions"

	"github.com/devGospel/jetstores/internal/session"
)

type AuthHandler struct {
	Sessions     *session.Manager
	SessionStore *sessions.CookieStore
}

// ShowLogin opens the login overlay. Also the target of the login prompt's
// "proceed" link.
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	sess, _ := browserSession(h.SessionStore, r)
	setOverlay(sess, OverlayLogin)
	sess.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ShowRegister opens the register overlay. Both the header link and the
// login overlay's switch link land here.
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	sess, _ := browserSession(h.SessionStore, r)
	setOverlay(sess, OverlayRegister)
	sess.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// CloseOverlay dismisses whatever overlay is open.
func (h *AuthHandler) CloseOverlay(w http.ResponseWriter, r *http.Request) {
	sess, _ := browserSession(h.SessionStore, r)
	setOverlay(sess, OverlayNone)
	sess.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)
	defer sess.Save(r, w)

	email := r.FormValue("email")
	password := r.FormValue("password")

	errors := make(map[string]string)
	if email == "" {
		errors["email"] = "Email is required."
	} else if !isValidEmail(email) {
		errors["email"] = "Please enter a valid email address."
	}
	if password == "" {
		errors["password"] = "Password is required."
	}
	if len(errors) > 0 {
		for _, msg := range errors {
			sess.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		setOverlay(sess, OverlayLogin)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ok, message := h.Sessions.Login(r.Context(), sid, email, password)
	if !ok {
		sess.AddFlash(FlashMessage{Type: "error", Message: message})
		setOverlay(sess, OverlayLogin)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	slog.Info("Login successful", "session_id", sid)
	resetViewState(sess)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Login successful!"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) RegisterPost(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)
	defer sess.Save(r, w)

	email := r.FormValue("email")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")
	phone := r.FormValue("phone")

	errors := make(map[string]string)
	if email == "" {
		errors["email"] = "Email is required."
	} else if !isValidEmail(email) {
		errors["email"] = "Please enter a valid email address."
	}
	if !isStrongPassword(password) {
		errors["password"] = "Password must be at least 8 characters and contain a letter and a digit."
	}
	if confirm != password {
		errors["confirm"] = "Passwords do not match."
	}
	if !isValidPhone(phone) {
		errors["phone"] = "Please enter a valid phone number."
	}
	if len(errors) > 0 {
		for _, msg := range errors {
			sess.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		setOverlay(sess, OverlayRegister)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	ok, message := h.Sessions.Register(r.Context(), sid, email, password, phone, "buyer")
	if !ok {
		sess.AddFlash(FlashMessage{Type: "error", Message: message})
		setOverlay(sess, OverlayRegister)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	slog.Info("Registration successful", "session_id", sid)
	resetViewState(sess)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Registration successful!"})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)
	h.Sessions.Logout(sid)
	resetViewState(sess)
	sess.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	sess.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Basic email validation regex
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,4}$`)

func isValidEmail(email string) bool {
	return emailRegex.MatchString(email)
}

// isStrongPassword enforces the register form's composition rule: at least
// 8 characters with a letter and a digit. Login only requires presence.
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

func isValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
