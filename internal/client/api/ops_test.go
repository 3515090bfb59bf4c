package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/newscheck/internal/client/repositories/tokens"
)

func TestLogin_DecodesAuthResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Empty(t, r.Header.Get("Authorization"), "login is unauthenticated")

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])

		_, _ = w.Write([]byte(`{
			"access_token":"A1","refresh_token":"R1",
			"user":{"id":7,"username":"alice","email":"a@example.com","is_admin":false,"is_active":true}
		}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{})
	resp, err := c.Login(context.Background(), "alice", "correct")
	require.NoError(t, err)
	require.Equal(t, "A1", resp.AccessToken)
	require.Equal(t, "R1", resp.RefreshToken)
	require.Equal(t, "alice", resp.User.Username)
}

func TestAnalyze_KeepsSubmittedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/news/analyze", r.URL.Path)
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":3,"result":"reliable","confidence":0.9,"created_at":"2025-01-01T10:00:00"}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	rec, err := c.Analyze(context.Background(), "some claim text")
	require.NoError(t, err)
	require.Equal(t, int64(3), rec.ID)
	require.Equal(t, "some claim text", rec.Content)
}

func TestSubmitFeedback_UnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/news/9/feedback", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, true, body["agrees_with_analysis"])
		require.Equal(t, "nice", body["comment"])

		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"message":"ok","feedback":{"id":12,"agrees_with_analysis":true,"comment":"nice","created_at":"2025-01-01T10:00:00"}}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	fb, err := c.SubmitFeedback(context.Background(), 9, true, "nice")
	require.NoError(t, err)
	require.Equal(t, int64(12), fb.ID)
	require.True(t, fb.AgreesWithAnalysis)
}

func TestHistory_SendsPagination(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "25", r.URL.Query().Get("per_page"))
		_, _ = w.Write([]byte(`{"items":[{"id":1,"result":"reliable","confidence":0.5,"created_at":"t"}],"total":26,"pages":2,"current_page":2}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	page, err := c.History(context.Background(), 2, 25)
	require.NoError(t, err)
	require.Equal(t, 26, page.Total)
	require.Len(t, page.Items, 1)
}

func TestAdminUnblockIP_EscapesPath(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	require.NoError(t, c.AdminUnblockIP(context.Background(), "10.0.0.7"))
	require.Equal(t, "/admin/blocked-ips/10.0.0.7", gotPath)
}

func TestAdminAnalytics_DecodesFullReport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/admin/analytics", r.URL.Path)
		require.Equal(t, "7", r.URL.Query().Get("days"))

		_, _ = w.Write([]byte(`{
			"total_users":10,"active_users":7,
			"total_news_requests":42,"total_feedback":5,
			"reliable_news_count":30,"unreliable_news_count":12,
			"feedback_ratio":0.12,
			"daily_stats":[
				{"date":"2025-01-01","news_requests":4,"user_registrations":1,"feedback_count":2},
				{"date":"2025-01-02","news_requests":6,"user_registrations":0,"feedback_count":1}
			]
		}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	report, err := c.AdminAnalytics(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, 10, report.TotalUsers)
	require.Equal(t, 7, report.ActiveUsers)
	require.Equal(t, 42, report.TotalRequests)
	require.Len(t, report.DailyStats, 2)
	require.Equal(t, "2025-01-01", report.DailyStats[0].Date)
	require.Equal(t, 4, report.DailyStats[0].NewsRequests)
	require.Equal(t, 1, report.DailyStats[0].UserRegistrations)
	require.Equal(t, 2, report.DailyStats[0].FeedbackCount)
}

func TestAdminUpdateUser_PartialBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, false, body["is_active"])
		_, ok := body["is_admin"]
		require.False(t, ok, "unset fields must be omitted")

		_, _ = w.Write([]byte(`{"message":"ok","user":{"id":5,"username":"bob","is_active":false}}`))
	}))
	defer srv.Close()

	c := newClient(t, srv.URL, &memStore{pair: tokens.Pair{Access: "A"}})
	inactive := false
	user, err := c.AdminUpdateUser(context.Background(), 5, AdminUserUpdate{IsActive: &inactive})
	require.NoError(t, err)
	require.False(t, user.IsActive)
}
