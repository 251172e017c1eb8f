package handlers

import (
	"context"
	"io"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/httperr"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/middleware"
	"github.com/BrilhoLimpeza/cleaning-scheduler/internal/models"
)

// fotos de celular ficam bem abaixo disso depois da compressão nativa
const maxPhotoUploadBytes = 15 << 20

// PhotoStore sobe a foto do serviço e devolve a chave do objeto.
type PhotoStore interface {
	SaveWorkPhoto(ctx context.Context, appointmentID uint, r io.Reader) (string, error)
}

type PhotoHandler struct {
	db    *gorm.DB
	store PhotoStore
}

func NewPhotoHandler(db *gorm.DB, store PhotoStore) *PhotoHandler {
	return &PhotoHandler{db: db, store: store}
}

// Upload recebe a foto de "antes e depois" via multipart e grava a
// chave do objeto no agendamento.
func (h *PhotoHandler) Upload(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	id, ok := appointmentID(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.
		Where("id = ? AND account_id = ?", id, accountID).
		First(&ap).Error; err != nil {
		httperr.NotFound(c, "appointment_not_found", "Agendamento não encontrado.")
		return
	}

	fileHeader, err := c.FormFile("photo")
	if err != nil {
		httperr.BadRequest(c, "missing_photo", "Envie o arquivo no campo photo.")
		return
	}
	if fileHeader.Size > maxPhotoUploadBytes {
		httperr.BadRequest(c, "photo_too_large", "Arquivo muito grande.")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		httperr.Internal(c, "photo_read_failed", "Erro ao ler o arquivo.")
		return
	}
	defer file.Close()

	objectKey, err := h.store.SaveWorkPhoto(c.Request.Context(), ap.ID, file)
	if err != nil {
		httperr.Internal(c, "photo_upload_failed", "Erro ao enviar a foto.")
		return
	}

	ap.WorkPhotoURL = objectKey
	if err := h.db.Save(&ap).Error; err != nil {
		httperr.Internal(c, "photo_persist_failed", "Erro ao salvar a foto.")
		return
	}

	c.JSON(200, gin.H{"work_photo_url": objectKey})
}
