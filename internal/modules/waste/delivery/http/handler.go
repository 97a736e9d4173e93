package handler

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"

	"anoa.com/ecoinsight/internal/modules/waste/dto"
	waste "anoa.com/ecoinsight/internal/modules/waste/service"
	"anoa.com/ecoinsight/pkg/apperror"
	"anoa.com/ecoinsight/pkg/response"
	"anoa.com/ecoinsight/pkg/validator"
	"github.com/gin-gonic/gin"
)

// accepted multipart field names for the image
var imageFields = []string{"file", "image"}

type WasteHandler struct {
	wasteService   waste.WasteService
	maxUploadBytes int64
}

func NewWasteHandler(wasteService waste.WasteService, maxUploadBytes int64) *WasteHandler {
	return &WasteHandler{wasteService: wasteService, maxUploadBytes: maxUploadBytes}
}

func (h *WasteHandler) Classify(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	if h.maxUploadBytes > 0 {
		// multipart overhead on top of the file itself
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes+1<<20)
	}

	header, err := h.formImage(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	if h.maxUploadBytes > 0 && header.Size > h.maxUploadBytes {
		response.ResponseError(c, tooLarge(h.maxUploadBytes))
		return
	}

	file, err := header.Open()
	if err != nil {
		response.ResponseError(c, apperror.Validation("No image uploaded"))
		return
	}
	defer file.Close()

	res, err := h.wasteService.Classify(c.Request.Context(), userID, dto.ClassifyInput{
		Image: dto.ImageFile{
			Reader:   file,
			FileName: header.Filename,
			Size:     header.Size,
		},
		Description: c.PostForm("description"),
	})
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *WasteHandler) formImage(c *gin.Context) (*multipart.FileHeader, error) {
	for _, field := range imageFields {
		header, err := c.FormFile(field)
		if err == nil {
			return header, nil
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, tooLarge(h.maxUploadBytes)
		}
	}
	return nil, apperror.Validation("No image uploaded")
}

func tooLarge(limit int64) error {
	return apperror.New(http.StatusRequestEntityTooLarge,
		fmt.Sprintf("Image must be at most %d MB", limit>>20), apperror.ErrInvalidInput)
}

func (h *WasteHandler) History(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.HistoryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	res, err := h.wasteService.History(c.Request.Context(), userID, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}

func (h *WasteHandler) Search(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.SearchQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.ResponseError(c, apperror.Validation(validator.FormatValidationError(err)))
		return
	}

	res, err := h.wasteService.Search(c.Request.Context(), userID, query.Query, query.Limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, res)
}
