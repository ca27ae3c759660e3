package webhook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yuk1-kondo/line2notion-receipts/internal/line"
	"github.com/yuk1-kondo/line2notion-receipts/internal/pipeline"
	"github.com/yuk1-kondo/line2notion-receipts/internal/receipt"
)

// maxBodyBytes bounds the webhook payload read.
const maxBodyBytes = 1 << 20

type Handler struct {
	channelSecret string
	lineClient    *line.Client
	intake        *pipeline.Intake
	logger        *slog.Logger
}

func NewHandler(channelSecret string, lineClient *line.Client, intake *pipeline.Intake, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}

	return &Handler{
		channelSecret: channelSecret,
		lineClient:    lineClient,
		intake:        intake,
		logger:        logger,
	}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/line", h.handleLine)
}

// handleLine processes a LINE webhook delivery. Anything after a valid
// signature answers 200 so LINE does not redeliver; processing errors
// are logged and, where the user can act on them, reported via reply.
func (h *Handler) handleLine(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	events, err := line.ParseWebhook(h.channelSecret, r.Header.Get("X-Line-Signature"), body)
	if err != nil {
		if errors.Is(err, line.ErrInvalidSignature) {
			http.Error(w, "invalid signature", http.StatusBadRequest)
			return
		}

		// Signed but undecodable. Answer 200 so LINE does not
		// redeliver a body we will never be able to parse.
		h.logger.Error("failed to decode webhook body", "error", err)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))

		return
	}

	for _, ev := range events {
		if !ev.IsImageMessage() {
			continue
		}

		h.handleImage(r.Context(), ev)
	}

	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

func (h *Handler) handleImage(ctx context.Context, ev line.Event) {
	img, err := h.lineClient.GetMessageContent(ctx, ev.Message.ID)
	if err != nil {
		h.logger.Error("failed to fetch message content", "message_id", ev.Message.ID, "error", err)
		return
	}

	summary, err := h.intake.ProcessImage(ctx, img)
	if err != nil {
		if errors.Is(err, receipt.ErrEmptyReceipt) {
			h.reply(ctx, ev.ReplyToken, "明細が抽出できませんでした。画像が鮮明かご確認ください。")
			return
		}

		h.logger.Error("receipt processing failed", "message_id", ev.Message.ID, "error", err)

		return
	}

	h.reply(ctx, ev.ReplyToken, summaryText(summary))
}

func (h *Handler) reply(ctx context.Context, replyToken, text string) {
	if err := h.lineClient.ReplyText(ctx, replyToken, text); err != nil {
		h.logger.Error("failed to send reply", "error", err)
	}
}

func summaryText(s *pipeline.Summary) string {
	id := s.ReceiptID
	if runes := []rune(id); len(runes) > 8 {
		id = string(runes[len(runes)-8:])
	}

	return fmt.Sprintf("%s\n登録: %d件（低信頼: %d／失敗: %d）\nレシートID: %s",
		s.Title, s.ItemsCreated, s.LowConfidence, s.ItemsFailed, id)
}
