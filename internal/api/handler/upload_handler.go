package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"blogapi/internal/common"

	"github.com/google/uuid"
)

const maxUploadBytes = 32 << 20

// UploadHandler stores post images on local disk under a generated name so
// uploads never collide or traverse outside the upload directory.
type UploadHandler struct {
	dir string
}

func NewUploadHandler(dir string) *UploadHandler {
	return &UploadHandler{dir: dir}
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	file, header, err := r.FormFile("file")
	if err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Missing file field: "+err.Error())
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	filename := uuid.NewString() + ext

	dst, err := os.Create(filepath.Join(h.dir, filename))
	if err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, "Failed to store file")
		return
	}

	common.RespondWithJSON(w, http.StatusOK, map[string]string{"filename": filename})
}
