package handler

import (
	"github.com/labstack/echo/v4"

	"dukkan/internal/usecase"
	"dukkan/pkg/errors"
	"dukkan/pkg/logger"
	"dukkan/pkg/response"
)

type FileHandler struct {
	uploadUseCase *usecase.UploadUseCase
}

func NewFileHandler(uploadUseCase *usecase.UploadUseCase) *FileHandler {
	return &FileHandler{
		uploadUseCase: uploadUseCase,
	}
}

func (h *FileHandler) UploadFile(c echo.Context) error {
	file, err := c.FormFile("file")
	if err != nil {
		return response.Error(c, errors.BadRequest("Missing or invalid file", err))
	}

	logger.Debug("Received upload %s, %d bytes, %s", file.Filename, file.Size, file.Header.Get("Content-Type"))

	src, err := file.Open()
	if err != nil {
		return response.Error(c, errors.BadRequest("Failed to read file", err))
	}
	defer src.Close()

	result, err := h.uploadUseCase.Upload(c.Request().Context(), src, file.Size, file.Header.Get("Content-Type"), c.FormValue("folder"))
	if err != nil {
		return response.Error(c, err)
	}

	return response.Created(c, result)
}
