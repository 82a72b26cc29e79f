package handlers

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/studyscribe/studyscribe-api/internal/models"
	"github.com/studyscribe/studyscribe-api/internal/services"
	"github.com/studyscribe/studyscribe-api/internal/store"
)

const MaxFileSize = 50 * 1024 * 1024 // 50 MB

type CreateResourceRequest struct {
	Name    string `json:"name" binding:"required"`
	Type    string `json:"type" binding:"required"`
	URL     string `json:"url"`
	Content string `json:"content"`
}

type UpdateResourceRequest struct {
	Name    *string `json:"name"`
	URL     *string `json:"url"`
	Content *string `json:"content"`
}

// CreateResource adds a link, note, or other resource to a subject. PDF
// resources go through UploadResource instead.
func CreateResource(st *store.Store, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID := c.Param("id")

		var req CreateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if !models.ValidResourceType(req.Type) || req.Type == models.ResourcePDF {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid resource type"})
			return
		}

		resource, created := st.AddResource(c.Request.Context(), store.ResourceFields{
			Name:      req.Name,
			Type:      req.Type,
			URL:       req.URL,
			Content:   req.Content,
			SubjectID: subjectID,
		})
		if !created {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subject not found"})
			return
		}

		if search != nil {
			go func(r models.Resource) {
				if err := search.IndexResource(r, ""); err != nil {
					log.Printf("failed to index resource %s: %v", r.ID, err)
				}
			}(resource)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": resource})
	}
}

// UploadResource stores a PDF file and adds it to the subject as a pdf
// resource. The file goes to object storage; its text is extracted and
// indexed in the background.
func UploadResource(st *store.Store, files *services.FileService, tika *services.TextExtractionService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		subjectID := c.Param("id")

		if _, ok := st.Subject(subjectID); !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subject not found"})
			return
		}

		if files == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "error": "File storage is not available"})
			return
		}

		// Parse multipart form
		if err := c.Request.ParseMultipartForm(MaxFileSize); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File too large"})
			return
		}

		file, header, err := c.Request.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No file uploaded"})
			return
		}
		defer file.Close()

		if header.Size > MaxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "File exceeds 50MB limit"})
			return
		}

		mimeType := header.Header.Get("Content-Type")
		if mimeType != "application/pdf" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Only PDF files are supported"})
			return
		}

		name := c.PostForm("name")
		if name == "" {
			name = header.Filename
		}

		// Generate unique object key
		ext := filepath.Ext(header.Filename)
		objectKey := fmt.Sprintf("%s%s", uuid.New().String(), ext)

		if err := files.Upload(c.Request.Context(), file, objectKey, header.Size, mimeType); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to upload file"})
			return
		}

		resource, created := st.AddResource(c.Request.Context(), store.ResourceFields{
			Name:      name,
			Type:      models.ResourcePDF,
			Path:      objectKey,
			SubjectID: subjectID,
		})
		if !created {
			// Subject vanished between the check and the add; drop the orphan file.
			_ = files.Delete(c.Request.Context(), objectKey)
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Subject not found"})
			return
		}

		var extracted string
		if tika != nil {
			text, err := tika.ExtractText(c.Request.Context(), file)
			if err != nil {
				log.Printf("failed to extract text from %s: %v", resource.ID, err)
			} else {
				extracted = text
			}
		}

		if search != nil {
			go func(r models.Resource, text string) {
				if err := search.IndexResource(r, text); err != nil {
					log.Printf("failed to index resource %s: %v", r.ID, err)
				}
			}(resource, extracted)
		}

		c.JSON(http.StatusCreated, gin.H{"success": true, "data": resource})
	}
}

// UpdateResource edits the mutable fields of a resource
func UpdateResource(st *store.Store, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := st.Resource(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
			return
		}

		var req UpdateResourceRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if req.Name != nil {
			resource.Name = *req.Name
		}
		if req.URL != nil {
			resource.URL = *req.URL
		}
		if req.Content != nil {
			resource.Content = *req.Content
		}

		st.UpdateResource(c.Request.Context(), resource)

		if search != nil {
			go func(r models.Resource) {
				if err := search.IndexResource(r, ""); err != nil {
					log.Printf("failed to index resource %s: %v", r.ID, err)
				}
			}(resource)
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": resource})
	}
}

// DeleteResource removes a resource from its subject; a stored PDF file is
// deleted from object storage as well
func DeleteResource(st *store.Store, files *services.FileService, search *services.SearchService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		resource, ok := st.Resource(id)
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
			return
		}

		st.DeleteResource(c.Request.Context(), id)

		if resource.Type == models.ResourcePDF && resource.Path != "" && files != nil {
			if err := files.Delete(c.Request.Context(), resource.Path); err != nil {
				log.Printf("failed to delete file %s: %v", resource.Path, err)
			}
		}

		if search != nil {
			go func() {
				if err := search.DeleteResource(id); err != nil {
					log.Printf("failed to deindex resource %s: %v", id, err)
				}
			}()
		}

		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}

// OpenResource resolves what the client should open for a resource: a
// download URL for a stored PDF, the target for a link. State is untouched.
func OpenResource(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := st.Resource(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
			return
		}

		target, err := st.OpenResource(c.Request.Context(), resource)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to resolve resource"})
			return
		}
		if target == "" {
			c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"target": nil}})
			return
		}

		c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"target": target}})
	}
}

// DownloadResource streams a stored PDF back to the client
func DownloadResource(st *store.Store, files *services.FileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resource, ok := st.Resource(c.Param("id"))
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Resource not found"})
			return
		}
		if resource.Type != models.ResourcePDF || resource.Path == "" || files == nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Resource has no stored file"})
			return
		}

		object, err := files.Download(c.Request.Context(), resource.Path)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to download file"})
			return
		}
		defer object.Close()

		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", resource.Name))
		c.Header("Content-Type", "application/pdf")
		if _, err := io.Copy(c.Writer, object); err != nil {
			log.Printf("failed streaming resource %s: %v", resource.ID, err)
		}
	}
}
