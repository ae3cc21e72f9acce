package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mydayflow/MyDayFlow-BE/internal/database"
	"github.com/mydayflow/MyDayFlow-BE/internal/handlers"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/logger"
	"github.com/mydayflow/MyDayFlow-BE/internal/pkg/middleware"
	"github.com/mydayflow/MyDayFlow-BE/internal/repository"
	"github.com/mydayflow/MyDayFlow-BE/internal/service"
	"github.com/mydayflow/MyDayFlow-BE/internal/worker"
)

const testSecret = "integration-test-secret"

// 和 cmd/dayflow 一样的接线，只是换成内存数据库
func newTestRouter(t *testing.T) (*gin.Engine, *worker.SummaryWorker) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.OpenMemory()
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	log := logger.Init("test")

	userRepo := repository.NewUserRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	sessionRepo := repository.NewSessionRepository(db)
	summaryRepo := repository.NewSummaryRepository(db)

	summaryWorker := worker.NewSummaryWorker(sessionRepo, summaryRepo, log)
	summaryWorker.Start()

	activitySvc := service.NewActivityService(activityRepo)
	userSvc := service.NewUserService(userRepo, activitySvc)
	timerSvc := service.NewTimerService(sessionRepo, activityRepo, summaryWorker, log, 0)
	statsSvc := service.NewStatsService(sessionRepo, activityRepo, summaryRepo)

	authH := handlers.NewAuth(userSvc, testSecret)
	timerH := handlers.NewTimer(timerSvc)
	activityH := handlers.NewActivities(activitySvc)
	statsH := handlers.NewStats(statsSvc)
	syncH := handlers.NewSync(timerSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Visitor())

	r.GET("/api/v1/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "ts": time.Now().Unix()})
	})
	r.POST("/guest-login", authH.GuestLogin)

	api := r.Group("/api/v1")
	api.Use(middleware.JWTAuth(testSecret))
	api.POST("/sessions/start", timerH.Start)
	api.POST("/sessions/pause", timerH.Pause)
	api.POST("/sessions/resume", timerH.Resume)
	api.POST("/sessions/stop", timerH.Stop)
	api.GET("/sessions/current", timerH.Current)
	api.GET("/sync/status", syncH.Status)
	api.POST("/sync/focus-check", syncH.FocusCheck)
	api.GET("/categories", activityH.ListCategories)
	api.GET("/items", activityH.ListItems)
	api.GET("/stats/summary", statsH.Summary)

	return r, summaryWorker
}

func postJSON(t *testing.T, client *http.Client, url string, body any) map[string]any {
	t.Helper()
	b, _ := json.Marshal(body)
	resp, err := client.Post(url, "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("post %s: status %d", url, resp.StatusCode)
	}
	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
	return out
}

func getJSON(t *testing.T, client *http.Client, url string, out any) {
	t.Helper()
	resp, err := client.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get %s: status %d", url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode %s: %v", url, err)
	}
}

func TestHealthz(t *testing.T) {
	r, w := newTestRouter(t)
	defer w.Stop()
	server := httptest.NewServer(r)
	defer server.Close()

	resp, err := http.Get(server.URL + "/api/v1/healthz")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("expected status ok, got: %v", body["status"])
	}
}

func TestGuestTimerFlow(t *testing.T) {
	// 完整游客流程：登录拿默认分类 -> 开始 -> 暂停 -> 恢复 -> 停表 -> 看统计
	r, w := newTestRouter(t)
	defer w.Stop()
	server := httptest.NewServer(r)
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	login := postJSON(t, client, server.URL+"/guest-login", nil)
	if login["token"] == "" {
		t.Fatal("expected a token")
	}

	// 登录时 seed 的默认分类应该已经就位
	var cats []map[string]any
	getJSON(t, client, server.URL+"/api/v1/categories", &cats)
	if len(cats) == 0 {
		t.Fatal("expected seeded categories")
	}
	var items []map[string]any
	getJSON(t, client, server.URL+"/api/v1/items?category_id="+cats[0]["id"].(string), &items)
	if len(items) == 0 {
		t.Fatal("expected seeded items")
	}

	started := postJSON(t, client, server.URL+"/api/v1/sessions/start",
		map[string]any{"item_id": items[0]["id"]})
	if started["status"] != "active" {
		t.Fatalf("expected active, got %v", started["status"])
	}

	// 开着表不能再开一个
	b, _ := json.Marshal(map[string]any{"item_id": items[0]["id"]})
	resp, err := client.Post(server.URL+"/api/v1/sessions/start", "application/json", bytes.NewReader(b))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409, got %d", resp.StatusCode)
	}

	paused := postJSON(t, client, server.URL+"/api/v1/sessions/pause", nil)
	if paused["status"] != "paused" {
		t.Fatalf("expected paused, got %v", paused["status"])
	}
	resumed := postJSON(t, client, server.URL+"/api/v1/sessions/resume", nil)
	if resumed["status"] != "active" {
		t.Fatalf("expected active, got %v", resumed["status"])
	}

	var status map[string]any
	getJSON(t, client, server.URL+"/api/v1/sync/status", &status)
	if status["running"] != true {
		t.Fatal("expected running=true")
	}

	stopped := postJSON(t, client, server.URL+"/api/v1/sessions/stop",
		map[string]any{"completed": true})
	if stopped["status"] != "completed" {
		t.Fatalf("expected completed, got %v", stopped["status"])
	}
	if stopped["pause_count"].(float64) != 1 {
		t.Fatalf("expected one pause, got %v", stopped["pause_count"])
	}
	total := int64(stopped["total_seconds"].(float64))
	active := int64(stopped["active_seconds"].(float64))
	if active > total {
		t.Fatalf("active %d > total %d", active, total)
	}

	getJSON(t, client, server.URL+"/api/v1/sync/status", &status)
	if status["running"] != false {
		t.Fatal("expected running=false")
	}

	var sum map[string]any
	getJSON(t, client, server.URL+"/api/v1/stats/summary", &sum)
	if sum["today_count"].(float64) != 1 {
		t.Fatalf("expected one session today, got %v", sum["today_count"])
	}
}

func TestFocusCheckNoStopsSession(t *testing.T) {
	r, w := newTestRouter(t)
	defer w.Stop()
	server := httptest.NewServer(r)
	defer server.Close()

	jar, _ := cookiejar.New(nil)
	client := &http.Client{Jar: jar}

	postJSON(t, client, server.URL+"/guest-login", nil)
	var cats []map[string]any
	getJSON(t, client, server.URL+"/api/v1/categories", &cats)
	var items []map[string]any
	getJSON(t, client, server.URL+"/api/v1/items?category_id="+cats[0]["id"].(string), &items)
	postJSON(t, client, server.URL+"/api/v1/sessions/start", map[string]any{"item_id": items[0]["id"]})

	// 回答"还在专注"：会话继续
	out := postJSON(t, client, server.URL+"/api/v1/sync/focus-check", map[string]any{"focused": true})
	if out["stopped"] != false {
		t.Fatal("expected stopped=false")
	}
	// 回答"不在了"：自动按完成停表
	out = postJSON(t, client, server.URL+"/api/v1/sync/focus-check", map[string]any{"focused": false})
	if out["stopped"] != true {
		t.Fatal("expected stopped=true")
	}

	var status map[string]any
	getJSON(t, client, server.URL+"/api/v1/sync/status", &status)
	if status["running"] != false {
		t.Fatal("expected running=false after focus-check no")
	}
}
