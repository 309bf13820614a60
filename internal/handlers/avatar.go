package handlers

import (
	"errors"
	"net/http"

	"gym_backend/internal/services"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// avatarField - файл в multipart-формах участников и тренеров
const avatarField = "profilePic"

// uploadAvatar сохраняет profilePic из multipart-формы.
// Без файла возвращает пустой URL; ok=false - ответ с ошибкой уже отправлен.
func uploadAvatar(h *BaseHandler, c *gin.Context, uploads services.UploadService) (url string, ok bool) {
	if c.ContentType() != gin.MIMEMultipartPOSTForm || uploads == nil {
		return "", true
	}

	file, err := c.FormFile(avatarField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", true
		}
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid file upload: "+err.Error()))
		return "", false
	}

	url, err = uploads.SaveAvatar(c.Request.Context(), file)
	if err != nil {
		h.HandleServiceError(c, err)
		return "", false
	}
	return url, true
}

// avatarPatch - дополнительное поле для ReadPatch, если файл был загружен
func avatarPatch(url string) map[string]string {
	if url == "" {
		return nil
	}
	return map[string]string{avatarField: url}
}
