package handlers

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"dronaai/internal/models"
	"dronaai/internal/resume"
)

// maxResumeUpload caps the accepted PDF size (16 MB).
const maxResumeUpload = 16 << 20

// UploadResumeResponse describes the extracted resume text.
type UploadResumeResponse struct {
	Characters int  `json:"characters"`
	Truncated  bool `json:"truncated"`
}

// HandleUploadResume extracts text from an uploaded PDF resume and holds it
// for the session's next generation request. Uploading again replaces the
// previous text; the raw PDF bytes are discarded.
func (h *Handler) HandleUploadResume(c *gin.Context) {
	sid := sessionID(c)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing resume file"})
		return
	}
	if fileHeader.Size > maxResumeUpload {
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: "resume file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("ERROR: failed to open uploaded resume for session %s: %v", sid, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read resume file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		log.Printf("ERROR: failed to read uploaded resume for session %s: %v", sid, err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "failed to read resume file"})
		return
	}

	text, err := resume.ExtractText(data)
	if err != nil {
		log.Printf("WARN: resume extraction failed for session %s: %v", sid, err)
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "could not extract text from the PDF"})
		return
	}

	h.setResumeText(sid, text)

	c.JSON(http.StatusOK, UploadResumeResponse{
		Characters: len(text),
		Truncated:  len(text) > resume.MaxChars,
	})
}
