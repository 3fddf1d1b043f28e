package handlers

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/Julie983186/DynamicPricing/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type fakeHistoryRepo struct {
	histories map[string]*models.History
	deleted   []string
}

func (r *fakeHistoryRepo) Create(h *models.History) error { return nil }

func (r *fakeHistoryRepo) FindByID(id string) (*models.History, error) {
	h, ok := r.histories[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return h, nil
}

func (r *fakeHistoryRepo) Delete(id string) error {
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakeHistoryRepo) FindByUserID(userID, search, date string) ([]models.History, error) {
	return nil, nil
}

func deleteHistoryCtx(t *testing.T, historyID string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: historyID}}
	return c, w
}

// 只能删自己的纪录：别人的删不掉，没登录也删不掉
func TestDeleteHistoryOwnerOnly(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()
	historyID := uuid.New()

	newRepo := func() *fakeHistoryRepo {
		return &fakeHistoryRepo{histories: map[string]*models.History{
			historyID.String(): {Base: models.Base{ID: historyID}, UserID: owner},
		}}
	}

	// 本人删除成功
	repo := newRepo()
	h := NewHistoryHandler(repo, nil)
	c, w := deleteHistoryCtx(t, historyID.String())
	c.Set("current_user_id", owner)
	h.DeleteHistory(c)
	if w.Code != 200 || len(repo.deleted) != 1 {
		t.Fatalf("本人删除应成功: code=%d deleted=%v", w.Code, repo.deleted)
	}

	// 其他用户被拒
	repo = newRepo()
	h = NewHistoryHandler(repo, nil)
	c, w = deleteHistoryCtx(t, historyID.String())
	c.Set("current_user_id", stranger)
	h.DeleteHistory(c)
	if w.Code != 403 || len(repo.deleted) != 0 {
		t.Fatalf("非本人删除应被拒: code=%d deleted=%v", w.Code, repo.deleted)
	}

	// 未登录被拒
	repo = newRepo()
	h = NewHistoryHandler(repo, nil)
	c, w = deleteHistoryCtx(t, historyID.String())
	h.DeleteHistory(c)
	if w.Code != 403 || len(repo.deleted) != 0 {
		t.Fatalf("未登录删除应被拒: code=%d deleted=%v", w.Code, repo.deleted)
	}
}

// 不存在的纪录返回 404
func TestDeleteHistoryNotFound(t *testing.T) {
	repo := &fakeHistoryRepo{histories: map[string]*models.History{}}
	h := NewHistoryHandler(repo, nil)
	c, w := deleteHistoryCtx(t, uuid.NewString())
	c.Set("current_user_id", uuid.New())
	h.DeleteHistory(c)
	if w.Code != 404 {
		t.Fatalf("不存在的纪录应返回 404，得到 %d", w.Code)
	}
}
