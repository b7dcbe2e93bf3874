package cache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ifsp/cadastro/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return NewRedisStore(c, []byte("0123456789abcdef0123456789abcdef")), mr
}

func newRouter(store sessions.Store) *gin.Engine {
	r := gin.New()
	r.Use(sessions.Sessions("cadastro", store))
	r.GET("/set", func(c *gin.Context) {
		s := sessions.Default(c)
		s.Set("name", c.Query("name"))
		s.Set("known", true)
		if err := s.Save(); err != nil {
			c.String(http.StatusInternalServerError, err.Error())
			return
		}
		c.Status(http.StatusNoContent)
	})
	r.GET("/get", func(c *gin.Context) {
		s := sessions.Default(c)
		name, _ := s.Get("name").(string)
		known, _ := s.Get("known").(bool)
		c.JSON(http.StatusOK, gin.H{"name": name, "known": known})
	})
	return r
}

func TestRedisStoreRoundTrip(t *testing.T) {
	store, mr := newTestStore(t)
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set?name=Alice", nil))
	require.Equal(t, http.StatusNoContent, w.Code)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Len(t, mr.Keys(), 1)
	assert.Contains(t, mr.Keys()[0], keyPrefix)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookies[0])
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"name":"Alice","known":true}`, w.Body.String())
}

func TestRedisStoreIgnoresForgedAndExpiredCookies(t *testing.T) {
	store, mr := newTestStore(t)
	r := newRouter(store)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(&http.Cookie{Name: "cadastro", Value: "forged"})
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"name":"","known":false}`, w.Body.String())

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set?name=Bob", nil))
	cookie := w.Result().Cookies()[0]
	mr.FlushAll()

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/get", nil)
	req.AddCookie(cookie)
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"name":"","known":false}`, w.Body.String())
}

func TestRedisStoreHonoursMaxAge(t *testing.T) {
	store, mr := newTestStore(t)
	store.Options(sessions.Options{Path: "/", MaxAge: 60, HttpOnly: true})
	r := newRouter(store)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/set?name=Carol", nil))
	cookie := w.Result().Cookies()[0]
	assert.Equal(t, 60, cookie.MaxAge)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 60, int(mr.TTL(mr.Keys()[0]).Seconds()))
}

func TestInitRedisEmbedded(t *testing.T) {
	require.NoError(t, InitRedis(context.Background(), config.RedisSettings{}))
	t.Cleanup(func() { _ = Close() })

	assert.True(t, IsEmbedded())
	require.NotNil(t, GetClient())
	assert.NoError(t, GetClient().Ping(context.Background()).Err())
	assert.Error(t, InitRedis(context.Background(), config.RedisSettings{}))
}
