package middleware

import (
	"net/http"

	"github.com/gorilla/sessions"

	"schoolsite/internal/entity"
)

const (
	sessionName      = "app-session"
	keyUserID        = "user_id"
	keyUsername      = "username"
	keyRole          = "role"
	keyRedirectAfter = "redirect_after_login"
)

// Sessions - явная зависимость вместо глобального store
type Sessions struct {
	store *sessions.CookieStore
}

func NewSessions(secret string) *Sessions {
	return &Sessions{store: sessions.NewCookieStore([]byte(secret))}
}

type CurrentUser struct {
	ID       int
	Username string
	Role     entity.Role
}

// User достает текущего пользователя из сессии, nil если аноним
func (s *Sessions) User(r *http.Request) *CurrentUser {
	session, _ := s.store.Get(r, sessionName)

	userID, ok := session.Values[keyUserID].(int)
	if !ok || userID == 0 {
		return nil
	}

	username, _ := session.Values[keyUsername].(string)
	role, _ := session.Values[keyRole].(string)

	return &CurrentUser{
		ID:       userID,
		Username: username,
		Role:     entity.Role(role),
	}
}

// SignIn привязывает сессию к пользователю
func (s *Sessions) SignIn(w http.ResponseWriter, r *http.Request, user *entity.User) error {
	session, _ := s.store.Get(r, sessionName)
	session.Values[keyUserID] = user.ID
	session.Values[keyUsername] = user.Username
	session.Values[keyRole] = string(user.Role)

	return session.Save(r, w)
}

// SignOut безусловно переводит сессию в анонимное состояние
func (s *Sessions) SignOut(w http.ResponseWriter, r *http.Request) {
	session, _ := s.store.Get(r, sessionName)
	session.Options.MaxAge = -1
	session.Save(r, w)
}

// Flash откладывает сообщение до следующего рендера
func (s *Sessions) Flash(w http.ResponseWriter, r *http.Request, message string) {
	session, _ := s.store.Get(r, sessionName)
	session.AddFlash(message)
	session.Save(r, w)
}

// PopFlashes забирает накопленные сообщения и очищает их
func (s *Sessions) PopFlashes(w http.ResponseWriter, r *http.Request) []string {
	session, _ := s.store.Get(r, sessionName)

	flashes := session.Flashes()
	if len(flashes) > 0 {
		session.Save(r, w)
	}

	messages := make([]string, 0, len(flashes))
	for _, flash := range flashes {
		if message, ok := flash.(string); ok {
			messages = append(messages, message)
		}
	}

	return messages
}

// PopRedirectAfterLogin возвращает сохраненный путь ("next") и стирает его
func (s *Sessions) PopRedirectAfterLogin(w http.ResponseWriter, r *http.Request) string {
	session, _ := s.store.Get(r, sessionName)

	path, ok := session.Values[keyRedirectAfter].(string)
	if !ok || path == "" {
		return ""
	}

	delete(session.Values, keyRedirectAfter)
	session.Save(r, w)

	return path
}

func (s *Sessions) setRedirectAfterLogin(w http.ResponseWriter, r *http.Request, path string) {
	session, _ := s.store.Get(r, sessionName)
	session.Values[keyRedirectAfter] = path
	session.Save(r, w)
}
