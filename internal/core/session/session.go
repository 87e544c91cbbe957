// Package session 把「目前後端 + 目前使用者」收斂成一個顯式物件，
// 登入時建立、登出時丟棄。核心邏輯只透過 Session 拿到持久層與
// 擁有者編號，不碰任何全域狀態。
package session

import (
	"context"
	"fmt"
	"sync"

	"home-assistant/internal/infrastructure/config"
	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"
	"home-assistant/internal/storage/local"
	"home-assistant/internal/storage/remote"

	"go.uber.org/zap"
)

// Session 一個已登入（或本機單租戶）的工作階段
type Session struct {
	OwnerID int64
	Store   storage.Store
}

// Manager 依設定建立持久層並開啟工作階段。
// HTTP 介面用 token 對應工作階段；token 只存在記憶體，重啟即失效。
type Manager struct {
	cfg      *config.Config
	store    storage.Store
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager 依 store.backend 設定選擇後端並完成初始化
func NewManager(ctx context.Context, cfg *config.Config) (*Manager, error) {
	var store storage.Store
	switch cfg.Store.Backend {
	case "local":
		store = local.New(cfg.Store.LocalPath)
	case "remote":
		store = remote.New(cfg.Store.RemoteDSN)
	default:
		return nil, fmt.Errorf("unknown store backend: %s", cfg.Store.Backend)
	}

	if err := store.Init(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	common.LogInfo("持久層已就緒", zap.String("後端", cfg.Store.Backend))
	return &Manager{cfg: cfg, store: store, sessions: make(map[string]*Session)}, nil
}

// Store 回傳底層持久層
func (m *Manager) Store() storage.Store {
	return m.store
}

// Close 關閉持久層
func (m *Manager) Close() {
	m.store.Close()
}

// OpenLocal 開啟本機單租戶工作階段（不需要帳號）
func (m *Manager) OpenLocal() (*Session, error) {
	if m.cfg.Store.Backend != "local" {
		return nil, common.ErrUnauthorized
	}
	return &Session{OwnerID: storage.LocalOwnerID, Store: m.store}, nil
}

// Login 驗證帳號並開啟遠端工作階段，回傳工作階段與 token
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, string, error) {
	ownerID, err := m.store.LoginUser(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	sess := &Session{OwnerID: ownerID, Store: m.store}
	token := m.register(sess)
	common.LogInfo("使用者登入", zap.Int64("owner", ownerID))
	return sess, token, nil
}

// Register 註冊帳號並直接開啟工作階段，回傳工作階段與 token
func (m *Manager) Register(ctx context.Context, username, password string) (*Session, string, error) {
	if username == "" || password == "" {
		return nil, "", common.NewValidationError("帳號密碼不可為空")
	}
	ownerID, err := m.store.RegisterUser(ctx, username, password)
	if err != nil {
		return nil, "", err
	}
	sess := &Session{OwnerID: ownerID, Store: m.store}
	token := m.register(sess)
	common.LogInfo("使用者註冊", zap.Int64("owner", ownerID))
	return sess, token, nil
}

// Resolve 以 token 取回工作階段；本機後端不需要 token
func (m *Manager) Resolve(token string) (*Session, error) {
	if m.cfg.Store.Backend == "local" {
		return &Session{OwnerID: storage.LocalOwnerID, Store: m.store}, nil
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[token]; ok {
		return sess, nil
	}
	return nil, common.ErrUnauthorized
}

// Logout 丟棄工作階段
func (m *Manager) Logout(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}

func (m *Manager) register(sess *Session) string {
	token := common.GenerateUUID()
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = sess
	return token
}
