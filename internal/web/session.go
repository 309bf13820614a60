package web

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"gym_backend/internal/auth"
	"gym_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
)

const sessionCookie = "gym_session"

var ErrNoSession = errors.New("no session")

// Session - состояние входа сотрудника, передается каждой странице явно
type Session struct {
	Token  string `json:"token"`
	GymID  uint   `json:"gymId"`
	UserID uint   `json:"-"`
	Name   string `json:"-"`
	Role   string `json:"-"`
}

// GymFilter - фильтр списков по залу сотрудника
func (s *Session) GymFilter() *uint {
	id := s.GymID
	return &id
}

// Owns - запись принадлежит залу сотрудника. Чужие записи страницы отдают как 404.
func (s *Session) Owns(gymID uint) bool {
	return s.GymID == gymID
}

// SessionStore хранит Session в подписанной (HMAC-SHA256) cookie.
// Токен внутри дополнительно проверяется TokenManager'ом.
type SessionStore struct {
	secret []byte
	secure bool
	ttl    time.Duration
	tokens *auth.TokenManager
}

func NewSessionStore(secret string, secure bool, ttl time.Duration, tokens *auth.TokenManager) *SessionStore {
	return &SessionStore{
		secret: []byte(secret),
		secure: secure,
		ttl:    ttl,
		tokens: tokens,
	}
}

// Save записывает cookie с токеном и залом
func (s *SessionStore) Save(c *gin.Context, sess Session) error {
	payload, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	value := base64.RawURLEncoding.EncodeToString(payload) + "." + s.sign(payload)

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(sessionCookie, value, int(s.ttl.Seconds()), "/", "", s.secure, true)
	return nil
}

// Load читает cookie, проверяет подпись и токен
func (s *SessionStore) Load(c *gin.Context) (*Session, error) {
	value, err := c.Cookie(sessionCookie)
	if err != nil || value == "" {
		return nil, ErrNoSession
	}
	return s.decode(value)
}

func (s *SessionStore) decode(value string) (*Session, error) {
	encoded, sig, ok := strings.Cut(value, ".")
	if !ok {
		return nil, ErrNoSession
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, ErrNoSession
	}
	if !hmac.Equal([]byte(sig), []byte(s.sign(payload))) {
		return nil, ErrNoSession
	}

	var sess Session
	if err := json.Unmarshal(payload, &sess); err != nil {
		return nil, ErrNoSession
	}

	claims, err := s.tokens.Parse(sess.Token)
	if err != nil {
		return nil, err
	}
	sess.UserID = claims.UserID
	sess.Name = claims.Name
	sess.Role = claims.Role
	return &sess, nil
}

// Clear удаляет cookie
func (s *SessionStore) Clear(c *gin.Context) {
	c.SetCookie(sessionCookie, "", -1, "/", "", s.secure, true)
}

func (s *SessionStore) sign(payload []byte) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// RequireSession - страницы /ui без сессии перенаправляются на вход
func (s *SessionStore) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := s.Load(c)
		if err != nil {
			s.Clear(c)
			c.Redirect(http.StatusSeeOther, "/ui/login")
			c.Abort()
			return
		}
		c.Set(string(contextkeys.SessionContextKey), sess)
		c.Next()
	}
}

func sessionFrom(c *gin.Context) *Session {
	val, ok := c.Get(string(contextkeys.SessionContextKey))
	if !ok {
		return nil
	}
	sess, _ := val.(*Session)
	return sess
}
