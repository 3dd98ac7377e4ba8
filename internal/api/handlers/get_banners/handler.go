package get_banners

import (
	"net/http"
	"time"

	"github.com/m04kA/SMC-CalendarService/internal/api/handlers"
)

// BannerResponse HTTP response model
type BannerResponse struct {
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	ShownAt   string `json:"shownAt"`
	ExpiresAt string `json:"expiresAt"`
}

type Handler struct {
	board BannerBoard
}

func NewHandler(board BannerBoard) *Handler {
	return &Handler{board: board}
}

// Handle GET /api/v1/banners
// Возвращает только неистекшие баннеры, новые первыми.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	active := h.board.Active()

	response := make([]BannerResponse, 0, len(active))
	for _, b := range active {
		response = append(response, BannerResponse{
			Kind:      string(b.Kind),
			Message:   b.Message,
			ShownAt:   b.ShownAt.Format(time.RFC3339Nano),
			ExpiresAt: b.ExpiresAt.Format(time.RFC3339Nano),
		})
	}

	handlers.RespondJSON(w, http.StatusOK, response)
}
