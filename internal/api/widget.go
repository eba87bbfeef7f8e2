package api

import (
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (a *API) widgetRoutes(r chi.Router) {
	r.Get("/", a.InteractionView)
	r.Post("/otp/send", a.InteractionSendOTP)
	r.Post("/otp/verify", a.InteractionVerifyOTP)
	r.Post("/password", a.InteractionPassword)
	r.Post("/wallet/nonce", a.InteractionWalletNonce)
	r.Post("/wallet/verify", a.InteractionWalletVerify)
	r.Get("/wallet/qr", a.InteractionWalletQR)
	r.Post("/abort", a.InteractionAbort)
}

// clientIP drops the port so rate limits hold across connections.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}

type OTPRequest struct {
	Channel    string `json:"channel"`
	Identifier string `json:"identifier"`
	Code       string `json:"code,omitempty"`
}

type PasswordRequest struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
}

type WalletRequest struct {
	Address   string `json:"address"`
	Signature string `json:"signature,omitempty"`
}

// @Summary Render data for the hosted login page
// @Tags Login
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param Accept-Language header string false "Preferred languages"
// @Success 200 {object} zkey.View
// @Router /interaction/{uid} [get]
func (a *API) InteractionView(w http.ResponseWriter, r *http.Request) {
	v, err := a.Widget.View(r.Context(), chi.URLParam(r, "uid"), r.Header.Get("Accept-Language"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// @Summary Send a one-time code
// @Tags Login
// @Accept json
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param body body OTPRequest true "channel is phone or email"
// @Success 200 {object} zkey.OTPResult
// @Failure 403 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /interaction/{uid}/otp/send [post]
func (a *API) InteractionSendOTP(w http.ResponseWriter, r *http.Request) {
	var body OTPRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := a.Widget.SendOTP(r.Context(), chi.URLParam(r, "uid"), clientIP(r), body.Channel, body.Identifier)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Verify a one-time code
// @Tags Login
// @Accept json
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param body body OTPRequest true "Code to verify"
// @Success 200 {object} zkey.LoginResult
// @Router /interaction/{uid}/otp/verify [post]
func (a *API) InteractionVerifyOTP(w http.ResponseWriter, r *http.Request) {
	var body OTPRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := a.Widget.VerifyOTP(r.Context(), chi.URLParam(r, "uid"), clientIP(r), body.Channel, body.Identifier, body.Code)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Sign in with a password
// @Tags Login
// @Accept json
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param body body PasswordRequest true "Credentials"
// @Success 200 {object} zkey.LoginResult
// @Router /interaction/{uid}/password [post]
func (a *API) InteractionPassword(w http.ResponseWriter, r *http.Request) {
	var body PasswordRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := a.Widget.Password(r.Context(), chi.URLParam(r, "uid"), clientIP(r), body.Identifier, body.Password)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Get a wallet challenge
// @Tags Login
// @Accept json
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param body body WalletRequest true "Wallet address"
// @Success 200 {object} zkey.WalletChallenge
// @Router /interaction/{uid}/wallet/nonce [post]
func (a *API) InteractionWalletNonce(w http.ResponseWriter, r *http.Request) {
	var body WalletRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := a.Widget.WalletNonce(r.Context(), chi.URLParam(r, "uid"), clientIP(r), body.Address)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary Sign in with a wallet signature
// @Tags Login
// @Accept json
// @Produce json
// @Param uid path string true "Interaction uid"
// @Param body body WalletRequest true "Address and signature"
// @Success 200 {object} zkey.LoginResult
// @Router /interaction/{uid}/wallet/verify [post]
func (a *API) InteractionWalletVerify(w http.ResponseWriter, r *http.Request) {
	var body WalletRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	res, err := a.Widget.WalletVerify(r.Context(), chi.URLParam(r, "uid"), clientIP(r), body.Address, body.Signature)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// @Summary QR code for signing in with a mobile wallet
// @Tags Login
// @Produce png
// @Param uid path string true "Interaction uid"
// @Success 200 {file} binary
// @Router /interaction/{uid}/wallet/qr [get]
func (a *API) InteractionWalletQR(w http.ResponseWriter, r *http.Request) {
	png, err := a.Widget.WalletQR(r.Context(), chi.URLParam(r, "uid"), clientIP(r))
	if err != nil {
		writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

// @Summary Cancel the login
// @Tags Login
// @Produce json
// @Param uid path string true "Interaction uid"
// @Success 200 {object} zkey.LoginResult
// @Router /interaction/{uid}/abort [post]
func (a *API) InteractionAbort(w http.ResponseWriter, r *http.Request) {
	res, err := a.Widget.Abort(r.Context(), chi.URLParam(r, "uid"))
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}
