package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/sessions"

	"github.com/devGospel/jetstores/internal/api"
	"github.com/devGospel/jetstores/internal/catalog"
	"github.com/devGospel/jetstores/internal/models"
	"github.com/devGospel/jetstores/internal/session"
)

type CheckoutHandler struct {
	Sessions     *session.Manager
	API          *api.Client
	SessionStore *sessions.CookieStore
}

// AddToCart remembers the selected product and opens either the checkout
// overlay (authenticated) or the login prompt (not). A repeat click simply
// replaces the remembered product; the overlay stays singular.
func (h *CheckoutHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)
	defer sess.Save(r, w)

	id, err := strconv.Atoi(r.FormValue("id"))
	if err != nil || catalog.ByID(id) == nil {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Unknown product."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	setSelectedProduct(sess, id)

	auth := h.Sessions.Current(r.Context(), sid)
	if !auth.IsAuthenticated {
		setOverlay(sess, OverlayLoginPrompt)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	setOverlay(sess, OverlayCheckout)
	// Load the seller directory for the form; errors render inline with a
	// retry control, so the overlay opens regardless.
	if _, err := h.Sessions.GetAllSellers(r.Context(), sid); err != nil {
		slog.Warn("Seller fetch failed while opening checkout", "session_id", sid, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RefreshSellers is the manual retry control on the checkout overlay.
func (h *CheckoutHandler) RefreshSellers(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)
	defer sess.Save(r, w)

	if _, err := h.Sessions.GetAllSellers(r.Context(), sid); err != nil {
		slog.Warn("Seller refresh failed", "session_id", sid, "error", err)
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// SubmitTransaction posts the checkout to the escrow API and, on success,
// sends the browser to the payment provider. That redirect is terminal for
// the storefront.
func (h *CheckoutHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	sess, sid := browserSession(h.SessionStore, r)

	auth := h.Sessions.Current(r.Context(), sid)
	if !auth.IsAuthenticated {
		setOverlay(sess, OverlayLoginPrompt)
		sess.AddFlash(FlashMessage{Type: "error", Message: "Please log in to complete your purchase."})
		sess.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	id, err := strconv.Atoi(r.FormValue("product_id"))
	product := catalog.ByID(id)
	if err != nil || product == nil {
		sess.AddFlash(FlashMessage{Type: "error", Message: "Unknown product."})
		sess.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	sellerID := r.FormValue("seller_id")
	platform := r.FormValue("payment_platform")

	errs := make(map[string]string)
	if sellerID == "" {
		errs["seller"] = "Please select a seller."
	}
	if !models.ValidPaymentPlatform(platform) {
		errs["platform"] = "Please choose a payment platform."
	}
	if len(errs) > 0 {
		for _, msg := range errs {
			sess.AddFlash(FlashMessage{Type: "error", Message: msg})
		}
		setOverlay(sess, OverlayCheckout)
		sess.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	req := models.TransactionRequest{
		Title:              product.Name,
		Amount:             product.Price,
		ProductImage:       product.ImageURL,
		ProductDescription: product.Description,
		PaymentPlatform:    platform,
		SellerID:           sellerID,
	}

	result, err := h.API.CreateTransaction(r.Context(), auth.AccessToken, req)
	if err != nil {
		message := api.ErrorMessage(err, "Failed to create transaction")
		if errors.Is(err, api.ErrNoRedirectURL) {
			message = err.Error()
		}
		slog.Warn("Transaction create failed", "session_id", sid, "product", product.ID, "error", err)
		sess.AddFlash(FlashMessage{Type: "error", Message: message})
		setOverlay(sess, OverlayCheckout)
		sess.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	slog.Info("Transaction created, redirecting to payment provider",
		"session_id", sid,
		"transaction_id", result.TransactionID,
		"platform", result.PaymentPlatform,
	)
	setOverlay(sess, OverlayNone)
	sess.Save(r, w)
	http.Redirect(w, r, result.RedirectURL, http.StatusSeeOther)
}
