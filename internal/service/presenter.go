package service

import (
	"context"
	"encoding/json"
	"fmt"
	"moviemart-checkout/internal/client"
	"moviemart-checkout/internal/model"
	"os"
	"path/filepath"
	"regexp"

	"github.com/sirupsen/logrus"
	"github.com/yeqown/go-qrcode"
)

const QRCodePath = "/assets/qr/"

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// Presenter fetches the confirmed purchase artifact once and keeps it on the purchase.
type Presenter struct {
	backend  client.MoviemartClient
	assetDir string
	log      *logrus.Logger
}

func NewPresenter(backend client.MoviemartClient, assetDir string, log *logrus.Logger) *Presenter {
	return &Presenter{
		backend:  backend,
		assetDir: assetDir,
		log:      log,
	}
}

// Present returns the stored result when there is one, otherwise fetches it
// and stores it on p. The caller persists p.
func (pr *Presenter) Present(ctx context.Context, p *model.Purchase) (*model.PurchaseResult, error) {
	if p.Result != "" {
		var stored model.PurchaseResult
		if err := json.Unmarshal([]byte(p.Result), &stored); err != nil {
			return nil, fmt.Errorf("decode stored result: %w", err)
		}
		// the celebration only plays on the first reveal
		stored.Celebrate = false
		return &stored, nil
	}

	result := &model.PurchaseResult{Kind: p.ItemKind}
	switch p.ItemKind {
	case model.ItemKindEvent:
		ticket, err := pr.backend.GetETicket(ctx, p.OrderID)
		if err != nil {
			return nil, err
		}
		if ticket.QRCodeURL == "" {
			url, err := pr.renderQRCode(ticket)
			if err != nil {
				pr.log.WithError(err).WithField("order_id", p.OrderID).Warn("render qr code")
			}
			ticket.QRCodeURL = url
		}
		if ticket.ItemTitle == "" {
			ticket.ItemTitle = p.ItemTitle
		}
		result.Ticket = ticket
	case model.ItemKindVideo:
		grant, err := pr.backend.GetPlaybackGrant(ctx, p.OrderID)
		if err != nil {
			return nil, err
		}
		if grant.VideoID == "" {
			grant.VideoID = p.ItemID
		}
		result.Playback = grant
		result.Celebrate = true
	default:
		return nil, ErrInvalidItemKind
	}

	b, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode result: %w", err)
	}
	p.Result = string(b)

	return result, nil
}

func (pr *Presenter) renderQRCode(ticket *model.ETicket) (string, error) {
	content := ticket.ReferenceCode
	if content == "" {
		content = ticket.OrderID
	}

	qrc, err := qrcode.New(content)
	if err != nil {
		return "", fmt.Errorf("new qr code: %w", err)
	}

	dir := filepath.Join(pr.assetDir, "qr")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create qr dir: %w", err)
	}

	filename := unsafeFileChars.ReplaceAllString(ticket.OrderID, "-") + ".jpeg"
	if err := qrc.Save(filepath.Join(dir, filename)); err != nil {
		return "", fmt.Errorf("save qr code: %w", err)
	}

	return QRCodePath + filename, nil
}
