package zkey

import (
	"context"
	"fmt"
	"net/url"

	"github.com/skip2/go-qrcode"

	"tenant-platform/internal/model"
)

const qrSize = 256

// WalletLink is the deep link a wallet app opens to sign the challenge.
func (w *Widget) WalletLink(uid, nonce string) string {
	q := url.Values{}
	q.Set("interaction", uid)
	q.Set("nonce", nonce)
	return w.walletLinkBase + "?" + q.Encode()
}

// WalletQR fetches a fresh nonce for the interaction and renders the
// wallet deep link as a PNG.
func (w *Widget) WalletQR(ctx context.Context, uid, remote string) ([]byte, error) {
	if w.walletLinkBase == "" {
		return nil, fmt.Errorf("%w: wallet link base is not configured", model.ErrForbidden)
	}
	if _, err := w.attempt(ctx, uid, remote, model.LoginWallet); err != nil {
		return nil, err
	}
	challenge, err := w.client.WalletNonce(ctx, uid, "")
	if err != nil {
		return nil, err
	}
	png, err := qrcode.Encode(w.WalletLink(uid, challenge.Nonce), qrcode.Medium, qrSize)
	if err != nil {
		return nil, fmt.Errorf("encode wallet qr: %w", err)
	}
	return png, nil
}
