package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/nmaslov/taskcrew/internal/config"
	"github.com/nmaslov/taskcrew/internal/dto"
	"github.com/nmaslov/taskcrew/internal/middleware"
	"github.com/nmaslov/taskcrew/internal/models"
	"github.com/nmaslov/taskcrew/internal/repository"
	"github.com/nmaslov/taskcrew/internal/services"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// TaskHandlerSuite drives the task endpoints through the full stack with an
// author, a producer, and an unrelated third account.
type TaskHandlerSuite struct {
	suite.Suite

	db            *gorm.DB
	router        *gin.Engine
	tokenService  *services.TokenService
	userService   *services.UserService
	author        *models.User
	producer      *models.User
	outsider      *models.User
	authorToken   string
	producerToken string
	outsiderToken string
}

func (s *TaskHandlerSuite) SetupTest() {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	s.Require().NoError(err)
	s.db = db

	err = db.AutoMigrate(
		&models.User{},
		&models.Task{},
		&models.TaskAuthor{},
		&models.TaskProducer{},
	)
	s.Require().NoError(err)

	cfg := &config.Config{
		TokenExpireMinutes: 30,
		TokenAlgorithm:     "HS256",
		TokenSecret:        "test-secret",
	}

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	authService := services.NewAuthService(userRepo)
	s.tokenService, err = services.NewTokenService(cfg)
	s.Require().NoError(err)
	s.userService = services.NewUserService(userRepo, authService)
	taskService := services.NewTaskService(taskRepo, userRepo)

	handler := NewTaskHandler(taskService)
	requireAuth := middleware.RequireAuth(s.tokenService, userRepo)

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	task := s.router.Group("/task")
	task.Use(requireAuth)
	{
		task.POST("/", handler.CreateTask)
		task.GET("/", handler.GetTask)
		task.PATCH("/", handler.UpdateTask)
		task.PATCH("/status", handler.UpdateTaskStatus)
		task.DELETE("/", handler.DeleteTask)
		task.POST("/restore", handler.RestoreTask)
	}

	s.author, s.authorToken = s.registerUser("author", "author@example.com")
	s.producer, s.producerToken = s.registerUser("producer", "producer@example.com")
	s.outsider, s.outsiderToken = s.registerUser("outsider", "outsider@example.com")
}

func (s *TaskHandlerSuite) TearDownTest() {
	sqlDB, err := s.db.DB()
	s.Require().NoError(err)
	sqlDB.Close()
}

func (s *TaskHandlerSuite) registerUser(username, email string) (*models.User, string) {
	user, err := s.userService.Register(services.RegisterInput{
		Username: username,
		Email:    email,
		Password: "supersecret",
	})
	s.Require().NoError(err)

	token, err := s.tokenService.Issue(email)
	s.Require().NoError(err)

	return user, token
}

func (s *TaskHandlerSuite) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()

	s.router.ServeHTTP(w, req)
	return w
}

// createTask creates a task authored by s.author and assigned to s.producer.
func (s *TaskHandlerSuite) createTask() dto.ShowTask {
	w := s.request(http.MethodPost, "/task/", gin.H{
		"task":          "Write release notes",
		"producers_ids": []string{s.producer.ID.String()},
	}, s.authorToken)
	s.Require().Equal(http.StatusOK, w.Code)

	var shown dto.ShowTask
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &shown))
	return shown
}

func (s *TaskHandlerSuite) advanceStatus(taskID uuid.UUID, token string) *httptest.ResponseRecorder {
	return s.request(http.MethodPatch, "/task/status?task_id="+taskID.String(), nil, token)
}

func (s *TaskHandlerSuite) TestCreateTask() {
	shown := s.createTask()

	s.Equal("Write release notes", shown.Task)
	s.Equal(models.StatusZero, shown.Status)
	s.NotEqual(uuid.Nil, shown.TaskID)
}

func (s *TaskHandlerSuite) TestCreateTask_RequiresProducers() {
	w := s.request(http.MethodPost, "/task/", gin.H{
		"task":          "Orphan task",
		"producers_ids": []string{},
	}, s.authorToken)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerSuite) TestCreateTask_UnknownProducer() {
	w := s.request(http.MethodPost, "/task/", gin.H{
		"task":          "Ghost task",
		"producers_ids": []string{uuid.New().String()},
	}, s.authorToken)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *TaskHandlerSuite) TestGetTask_ParticipantsOnly() {
	shown := s.createTask()
	path := "/task/?task_id=" + shown.TaskID.String()

	w := s.request(http.MethodGet, path, nil, s.authorToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, path, nil, s.producerToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, path, nil, s.outsiderToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *TaskHandlerSuite) TestGetTask_RequiresToken() {
	shown := s.createTask()

	w := s.request(http.MethodGet, "/task/?task_id="+shown.TaskID.String(), nil, "")
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *TaskHandlerSuite) TestUpdateTask_AuthorOnly() {
	shown := s.createTask()
	path := "/task/?task_id=" + shown.TaskID.String()

	w := s.request(http.MethodPatch, path, gin.H{"task": "Write and publish release notes"}, s.producerToken)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodPatch, path, gin.H{"task": "Write and publish release notes"}, s.authorToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, path, nil, s.authorToken)
	s.Equal(http.StatusOK, w.Code)
	var updated dto.ShowTask
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &updated))
	s.Equal("Write and publish release notes", updated.Task)
}

func (s *TaskHandlerSuite) TestUpdateTask_EmptyBody() {
	shown := s.createTask()

	w := s.request(http.MethodPatch, "/task/?task_id="+shown.TaskID.String(), gin.H{}, s.authorToken)
	s.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (s *TaskHandlerSuite) TestAdvanceStatus_ProducerMovesEarlySteps() {
	shown := s.createTask()

	w := s.advanceStatus(shown.TaskID, s.producerToken)
	s.Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/task/?task_id="+shown.TaskID.String(), nil, s.producerToken)
	s.Require().Equal(http.StatusOK, w.Code)
	var current dto.ShowTask
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &current))
	s.Equal(models.StatusActive, current.Status)
}

func (s *TaskHandlerSuite) TestAdvanceStatus_OutsiderDenied() {
	shown := s.createTask()

	w := s.advanceStatus(shown.TaskID, s.outsiderToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *TaskHandlerSuite) TestAdvanceStatus_CompletionIsAuthorOnly() {
	shown := s.createTask()

	// Producer walks the task to Verify.
	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.producerToken).Code)
	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.producerToken).Code)

	// The final step is reserved for authors.
	w := s.advanceStatus(shown.TaskID, s.producerToken)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.advanceStatus(shown.TaskID, s.authorToken)
	s.Equal(http.StatusOK, w.Code)

	// Completion retires the task.
	w = s.request(http.MethodGet, "/task/?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TaskHandlerSuite) TestAdvanceStatus_CompletedIsFinal() {
	shown := s.createTask()

	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.producerToken).Code)
	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.producerToken).Code)
	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.authorToken).Code)

	// The task is retired, so a further advance cannot find it.
	w := s.advanceStatus(shown.TaskID, s.authorToken)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *TaskHandlerSuite) TestDeleteAndRestore() {
	shown := s.createTask()
	s.Require().Equal(http.StatusOK, s.advanceStatus(shown.TaskID, s.producerToken).Code)

	w := s.request(http.MethodDelete, "/task/?task_id="+shown.TaskID.String(), nil, s.producerToken)
	s.Equal(http.StatusForbidden, w.Code)

	w = s.request(http.MethodDelete, "/task/?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Equal(http.StatusOK, w.Code)

	var deleted dto.DeletedTaskResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &deleted))
	s.Equal(shown.TaskID, deleted.DeletedTaskID)

	w = s.request(http.MethodGet, "/task/?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Equal(http.StatusNotFound, w.Code)

	w = s.request(http.MethodPost, "/task/restore?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Equal(http.StatusOK, w.Code)

	// Restoration resets the lifecycle.
	w = s.request(http.MethodGet, "/task/?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Require().Equal(http.StatusOK, w.Code)
	var restored dto.ShowTask
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &restored))
	s.Equal(models.StatusZero, restored.Status)
}

func (s *TaskHandlerSuite) TestRestore_AuthorOnly() {
	shown := s.createTask()

	w := s.request(http.MethodDelete, "/task/?task_id="+shown.TaskID.String(), nil, s.authorToken)
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodPost, "/task/restore?task_id="+shown.TaskID.String(), nil, s.producerToken)
	s.Equal(http.StatusForbidden, w.Code)
}

func (s *TaskHandlerSuite) TestInvalidTaskID() {
	w := s.request(http.MethodGet, "/task/?task_id=not-a-uuid", nil, s.authorToken)
	s.Equal(http.StatusBadRequest, w.Code)
}

func TestTaskHandlerSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerSuite))
}

func TestTaskHandler_AuthorSelfAssignsAsProducer(t *testing.T) {
	// A user may appear as both author and producer of the same task.
	env := setupUserTestEnv(t)
	alice, token := env.registerUser(t, "alice", "alice@example.com")

	userRepo := repository.NewUserRepository(env.db)
	taskRepo := repository.NewTaskRepository(env.db)
	taskService := services.NewTaskService(taskRepo, userRepo)
	handler := NewTaskHandler(taskService)
	requireAuth := middleware.RequireAuth(env.tokenService, userRepo)
	task := env.router.Group("/task")
	task.Use(requireAuth)
	task.POST("/", handler.CreateTask)

	w := env.request(t, http.MethodPost, "/task/", gin.H{
		"task":          "Solo task",
		"producers_ids": []string{alice.ID.String()},
	}, token)
	require.Equal(t, http.StatusOK, w.Code)
}
