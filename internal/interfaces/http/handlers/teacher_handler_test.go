package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/bivex/school-access/internal/application/command"
	"github.com/bivex/school-access/internal/application/query"
	"github.com/bivex/school-access/internal/domain/entity"
	"github.com/bivex/school-access/internal/mocks"
)

func newTeacherRouter(schoolID uuid.UUID, teacherRepo *mocks.MockTeacherRepository, requestRepo *mocks.MockProfileRequestRepository) *gin.Engine {
	gin.SetMode(gin.TestMode)

	teacherQuery := query.NewTeacherQuery(teacherRepo)
	requestQuery := query.NewProfileRequestQuery(requestRepo)
	requestCmd := command.NewRequestProfileCommand(requestRepo, teacherRepo)
	handler := NewTeacherHandler(teacherQuery, requestQuery, requestCmd)

	router := gin.New()
	authed := router.Group("", fakeAuth(schoolID))
	authed.GET("/teachers", handler.List)
	authed.GET("/teachers/:id", handler.Get)
	authed.POST("/teachers/:id/request", handler.RequestProfile)
	return router
}

func TestRequestProfileEndpoint_Success(t *testing.T) {
	teacherRepo := mocks.NewMockTeacherRepository()
	requestRepo := mocks.NewMockProfileRequestRepository()
	schoolID := uuid.New()

	teacher := entity.NewTeacher("Alice Nowak", []string{"math"}, "mazowieckie", 8, 120, "STEM tutor")
	teacherRepo.On("GetByID", mock.Anything, teacher.ID).Return(teacher, nil)
	requestRepo.On("Create", mock.Anything, mock.MatchedBy(func(r *entity.ProfileRequest) bool {
		return r.SchoolID == schoolID && r.TeacherID == teacher.ID && r.Status == entity.RequestPending
	})).Return(nil)

	router := newTeacherRouter(schoolID, teacherRepo, requestRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/teachers/"+teacher.ID.String()+"/request", strings.NewReader(`{"message":"Interested in math tutoring"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var body struct {
		Data struct {
			TeacherID string `json:"teacher_id"`
			Status    string `json:"status"`
			Message   string `json:"message"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, teacher.ID.String(), body.Data.TeacherID)
	assert.Equal(t, "pending", body.Data.Status)
	assert.Equal(t, "Interested in math tutoring", body.Data.Message)
	requestRepo.AssertExpectations(t)
}

func TestRequestProfileEndpoint_HiddenTeacher(t *testing.T) {
	teacherRepo := mocks.NewMockTeacherRepository()
	requestRepo := mocks.NewMockProfileRequestRepository()
	schoolID := uuid.New()

	teacher := entity.NewTeacher("Bob Kowalski", []string{"english"}, "pomorskie", 3, 90, "")
	teacher.Visible = false
	teacherRepo.On("GetByID", mock.Anything, teacher.ID).Return(teacher, nil)

	router := newTeacherRouter(schoolID, teacherRepo, requestRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/teachers/"+teacher.ID.String()+"/request", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	requestRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRequestProfileEndpoint_InvalidID(t *testing.T) {
	teacherRepo := mocks.NewMockTeacherRepository()
	requestRepo := mocks.NewMockProfileRequestRepository()

	router := newTeacherRouter(uuid.New(), teacherRepo, requestRepo)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/teachers/not-a-uuid/request", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
