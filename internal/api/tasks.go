package api

import (
	"fmt"                          // Photo object naming
	"net/http"                     // HTTP status codes
	"obra_system/internal/domain"  // Importing domain models
	"obra_system/internal/storage" // Photo object storage
	"path/filepath"                // File extension extraction
	"strconv"                      // Form field parsing
	"strings"                      // Extension normalization

	"github.com/gin-gonic/gin"      // Gin web framework
	"github.com/google/uuid"        // Unique photo object names
	"github.com/shopspring/decimal" // Exact decimal arithmetic for money
	"github.com/sirupsen/logrus"    // Logging library
	"gorm.io/gorm"                  // GORM ORM library
)

// ownedProject resolves the :id route param into a project owned by the
// authenticated user. Task routes never touch a task without this check.
func ownedProject(c *gin.Context, db *gorm.DB, userID uint) (*domain.Project, bool) {
	var project domain.Project
	if err := db.Where("id = ? AND user_id = ?", c.Param("id"), userID).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return nil, false
	}
	return &project, true
}

// taskForm holds the parsed multipart fields of a task write
type taskForm struct {
	Title        string
	Description  string
	Status       string
	ExpectedDate string
	ActualDate   string
	Cost         string
	OrderIndex   string
	PhotoURLs    []string // URLs the client wants to keep (update only)
}

// bindTaskForm reads the multipart form fields
func bindTaskForm(c *gin.Context) taskForm {
	return taskForm{
		Title:        c.PostForm("title"),
		Description:  c.PostForm("description"),
		Status:       c.PostForm("status"),
		ExpectedDate: c.PostForm("expected_date"),
		ActualDate:   c.PostForm("actual_date"),
		Cost:         c.PostForm("cost"),
		OrderIndex:   c.PostForm("order_index"),
		PhotoURLs:    c.PostFormArray("photo_urls"),
	}
}

// stagePhotos uploads the new photo files and returns their public URLs. On
// any upload failure the already staged objects are removed.
func stagePhotos(c *gin.Context, store storage.Storage) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil // No multipart body means no new photos
	}
	files := form.File["photos"]
	staged := make([]string, 0, len(files))
	for _, header := range files {
		f, err := header.Open()
		if err != nil {
			unstagePhotos(store, staged)
			return nil, err
		}
		ext := strings.ToLower(filepath.Ext(header.Filename))
		name := fmt.Sprintf("tasks/%s%s", uuid.NewString(), ext)
		url, err := store.Upload(name, f)
		f.Close()
		if err != nil {
			unstagePhotos(store, staged)
			return nil, err
		}
		staged = append(staged, url)
	}
	return staged, nil
}

// unstagePhotos removes uploaded objects after a failed write
func unstagePhotos(store storage.Storage, urls []string) {
	for _, url := range urls {
		if err := store.Delete(url); err != nil {
			logrus.WithFields(logrus.Fields{
				"url":   url,
				"error": err.Error(),
			}).Warn("Failed to remove staged photo")
		}
	}
}

// countNewPhotos reports how many photo files the request carries without
// uploading anything
func countNewPhotos(c *gin.Context) int {
	form, err := c.MultipartForm()
	if err != nil {
		return 0
	}
	return len(form.File["photos"])
}

// ListTasksHandler returns a project's tasks ordered by board position plus
// the kanban grouping with per-column counts
func ListTasksHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		project, ok := ownedProject(c, db, userID)
		if !ok {
			return
		}
		var tasks []domain.Task // Slice to hold tasks
		if err := db.Where("project_id = ?", project.ID).Order("order_index asc").Find(&tasks).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tasks"})
			return
		}
		kanban := map[string][]domain.Task{
			domain.TaskStatusTodo:  {},
			domain.TaskStatusDoing: {},
			domain.TaskStatusDone:  {},
		}
		for _, t := range tasks {
			kanban[t.Status] = append(kanban[t.Status], t)
		}
		c.JSON(http.StatusOK, gin.H{
			"tasks":  tasks,
			"kanban": kanban,
			"counts": gin.H{
				domain.TaskStatusTodo:  len(kanban[domain.TaskStatusTodo]),
				domain.TaskStatusDoing: len(kanban[domain.TaskStatusDoing]),
				domain.TaskStatusDone:  len(kanban[domain.TaskStatusDone]),
			},
		})
	}
}

// CreateTaskHandler inserts a task in a project the user owns, uploading any
// attached photos first and rolling them back if the insert fails
func CreateTaskHandler(db *gorm.DB, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		project, ok := ownedProject(c, db, userID)
		if !ok {
			return
		}
		form := bindTaskForm(c)
		if form.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		if form.Status == "" {
			form.Status = domain.TaskStatusTodo // Default column
		}
		if !domain.ValidTaskStatus(form.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		if countNewPhotos(c) > domain.MaxTaskPhotos {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("A task holds at most %d photos", domain.MaxTaskPhotos)})
			return
		}
		expectedDate, err := parseDatePtr(form.ExpectedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expected date"})
			return
		}
		actualDate, err := parseDatePtr(form.ActualDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actual date"})
			return
		}
		cost := decimal.Zero
		if form.Cost != "" {
			if cost, err = decimal.NewFromString(form.Cost); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost"})
				return
			}
		}
		orderIndex := 0
		if form.OrderIndex != "" {
			if orderIndex, err = strconv.Atoi(form.OrderIndex); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order index"})
				return
			}
		}
		staged, err := stagePhotos(c, store) // Upload before the row write
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photos"})
			return
		}
		task := domain.Task{
			ProjectID:    project.ID,
			Title:        form.Title,
			Description:  form.Description,
			Status:       form.Status,
			ExpectedDate: expectedDate,
			ActualDate:   actualDate,
			Cost:         cost,
			OrderIndex:   orderIndex,
			PhotoURLs:    staged,
		}
		if err := db.Create(&task).Error; err != nil {
			unstagePhotos(store, staged) // Compensate the uploads
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,
				"project_id": project.ID,
				"error":      err.Error(),
			}).Error("Failed to create task")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create task"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"task": task})
	}
}

// UpdateTaskHandler overwrites a task; kept photo URLs come in the form and
// new files are appended up to the limit. Photos dropped by the client are
// removed from storage after a successful write.
func UpdateTaskHandler(db *gorm.DB, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		project, ok := ownedProject(c, db, userID)
		if !ok {
			return
		}
		var task domain.Task // Fetch the row within the owned project
		if err := db.Where("id = ? AND project_id = ?", c.Param("taskID"), project.ID).First(&task).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		form := bindTaskForm(c)
		if form.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
			return
		}
		if form.Status == "" {
			form.Status = task.Status // Keep the current column
		}
		if !domain.ValidTaskStatus(form.Status) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status"})
			return
		}
		kept := make([]string, 0, len(form.PhotoURLs))
		existing := map[string]bool{}
		for _, url := range task.PhotoURLs {
			existing[url] = true
		}
		for _, url := range form.PhotoURLs {
			if existing[url] {
				kept = append(kept, url) // Only URLs the task already holds
			}
		}
		if len(kept)+countNewPhotos(c) > domain.MaxTaskPhotos {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("A task holds at most %d photos", domain.MaxTaskPhotos)})
			return
		}
		expectedDate, err := parseDatePtr(form.ExpectedDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid expected date"})
			return
		}
		actualDate, err := parseDatePtr(form.ActualDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid actual date"})
			return
		}
		cost := task.Cost
		if form.Cost != "" {
			if cost, err = decimal.NewFromString(form.Cost); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cost"})
				return
			}
		}
		orderIndex := task.OrderIndex
		if form.OrderIndex != "" {
			if orderIndex, err = strconv.Atoi(form.OrderIndex); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order index"})
				return
			}
		}
		staged, err := stagePhotos(c, store) // Upload before the row write
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload photos"})
			return
		}
		keptSet := map[string]bool{}
		for _, url := range kept {
			keptSet[url] = true
		}
		var dropped []string // Photos the client removed from the task
		for _, url := range task.PhotoURLs {
			if !keptSet[url] {
				dropped = append(dropped, url)
			}
		}
		task.Title = form.Title
		task.Description = form.Description
		task.Status = form.Status
		task.ExpectedDate = expectedDate
		task.ActualDate = actualDate
		task.Cost = cost
		task.OrderIndex = orderIndex
		task.PhotoURLs = append(kept, staged...)
		if err := db.Save(&task).Error; err != nil {
			unstagePhotos(store, staged) // Compensate the uploads
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update task"})
			return
		}
		unstagePhotos(store, dropped) // Safe only after the write committed
		c.JSON(http.StatusOK, gin.H{"task": task})
	}
}

// DeleteTaskHandler removes a task together with its stored photos
func DeleteTaskHandler(db *gorm.DB, store storage.Storage) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		project, ok := ownedProject(c, db, userID)
		if !ok {
			return
		}
		var task domain.Task // Fetch first to know which photos to remove
		if err := db.Where("id = ? AND project_id = ?", c.Param("taskID"), project.ID).First(&task).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
			return
		}
		if err := db.Delete(&task).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete task"})
			return
		}
		unstagePhotos(store, task.PhotoURLs)
		logrus.WithFields(logrus.Fields{
			"user_id": userID,
			"task_id": task.ID,
		}).Info("Task deleted")
		c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
	}
}
