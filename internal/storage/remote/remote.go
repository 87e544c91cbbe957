package remote

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"home-assistant/internal/pkg/common"
	"home-assistant/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const (
	retryAttempts = 3
	retryDelay    = time.Second
)

// Store 遠端多租戶後端（PostgreSQL）。所有操作套用 user_id 範圍，
// 連線層級的暫時性錯誤會以固定間隔重試最多三次。
type Store struct {
	dsn  string
	pool *pgxpool.Pool
}

// New 創建遠端後端
func New(dsn string) *Store {
	return &Store{dsn: dsn}
}

// Init 建立連線池並執行 goose migration
func (s *Store) Init(ctx context.Context) error {
	pool, err := pgxpool.New(ctx, s.dsn)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.pool = pool

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	db, err := goose.OpenDBWithDriver("pgx", s.dsn)
	if err != nil {
		return fmt.Errorf("failed to open migration connection: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	common.LogInfo("遠端資料庫已就緒")
	return nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// isTransient 判斷是否為可重試的連線層級錯誤
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// class 08 = connection exception
		return strings.HasPrefix(pgErr.Code, "08")
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "connection") || strings.Contains(msg, "broken pipe")
}

// withRetry 以固定間隔重試暫時性錯誤，最多三次；重試耗盡時以
// STORE_UNAVAILABLE 包裝最後一次錯誤回傳
func withRetry(ctx context.Context, name string, fn func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = fn()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt == retryAttempts {
			break
		}
		common.LogWarn("資料庫操作重試",
			zap.String("操作", name),
			zap.Int("嘗試次數", attempt),
			zap.Error(err),
		)
		select {
		case <-time.After(retryDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return common.NewError(common.ErrStoreUnavailable.Code, common.ErrStoreUnavailable.Message,
		common.ErrStoreUnavailable.Status, err)
}

// --- 使用者 ---

func (s *Store) RegisterUser(ctx context.Context, username, password string) (int64, error) {
	var id int64
	err := withRetry(ctx, "RegisterUser", func() error {
		err := s.pool.QueryRow(ctx,
			"INSERT INTO app_users (username, password) VALUES ($1, $2) RETURNING id",
			username, password).Scan(&id)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return common.ErrUsernameTaken
		}
		return err
	})
	return id, err
}

func (s *Store) LoginUser(ctx context.Context, username, password string) (int64, error) {
	var id int64
	err := withRetry(ctx, "LoginUser", func() error {
		err := s.pool.QueryRow(ctx,
			"SELECT id FROM app_users WHERE username = $1 AND password = $2",
			username, password).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return common.ErrLoginFailed
		}
		return err
	})
	return id, err
}

// --- 庫存 ---

func (s *Store) AddLot(ctx context.Context, owner int64, name string, quantity int, unit, expiryDate, buyDate, area string) error {
	return withRetry(ctx, "AddLot", func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		var (
			id                  int64
			oldQty              int
			oldExpiry, oldBuy   *string
		)
		err = tx.QueryRow(ctx, `
			SELECT id, quantity, expiry_date, buy_date FROM app_inventory
			WHERE user_id = $1 AND name = $2 AND area = $3 AND unit IS NOT DISTINCT FROM $4`,
			owner, name, area, unit).Scan(&id, &oldQty, &oldExpiry, &oldBuy)

		switch {
		case err == nil:
			// 合併：數量相加，效期與購買日取較早者
			finalExpiry := common.EarlierDate(deref(oldExpiry), expiryDate)
			finalBuy := common.EarlierDate(deref(oldBuy), buyDate)
			if _, err := tx.Exec(ctx, `
				UPDATE app_inventory SET quantity = $1, expiry_date = $2, buy_date = $3
				WHERE id = $4`,
				oldQty+quantity, nullable(finalExpiry), nullable(finalBuy), id); err != nil {
				return err
			}
		case errors.Is(err, pgx.ErrNoRows):
			if _, err := tx.Exec(ctx, `
				INSERT INTO app_inventory (user_id, name, quantity, unit, expiry_date, buy_date, area)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				owner, name, quantity, unit, nullable(expiryDate), nullable(buyDate), area); err != nil {
				return err
			}
		default:
			return err
		}

		return tx.Commit(ctx)
	})
}

func (s *Store) UpdateQuantity(ctx context.Context, owner, lotID int64, delta int) error {
	return withRetry(ctx, "UpdateQuantity", func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		var current int
		err = tx.QueryRow(ctx,
			"SELECT quantity FROM app_inventory WHERE id = $1 AND user_id = $2",
			lotID, owner).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return tx.Commit(ctx)
		}
		if err != nil {
			return err
		}

		if current+delta <= 0 {
			if _, err := tx.Exec(ctx, "DELETE FROM app_inventory WHERE id = $1", lotID); err != nil {
				return err
			}
		} else {
			if _, err := tx.Exec(ctx,
				"UPDATE app_inventory SET quantity = $1 WHERE id = $2",
				current+delta, lotID); err != nil {
				return err
			}
		}
		return tx.Commit(ctx)
	})
}

func (s *Store) scanLots(rows pgx.Rows) ([]common.Lot, error) {
	defer rows.Close()
	var lots []common.Lot
	for rows.Next() {
		var (
			lot               common.Lot
			unit, expiry, buy *string
		)
		if err := rows.Scan(&lot.ID, &lot.OwnerID, &lot.Name, &lot.Quantity, &unit, &expiry, &buy, &lot.Area); err != nil {
			return nil, err
		}
		lot.Unit = deref(unit)
		lot.ExpiryDate = deref(expiry)
		lot.BuyDate = deref(buy)
		lots = append(lots, lot)
	}
	return lots, rows.Err()
}

func (s *Store) GetLotsByArea(ctx context.Context, owner int64, area string) ([]common.Lot, error) {
	var lots []common.Lot
	err := withRetry(ctx, "GetLotsByArea", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT id, user_id, name, quantity, unit, expiry_date, buy_date, area
			FROM app_inventory WHERE user_id = $1 AND area = $2
			ORDER BY expiry_date ASC NULLS LAST`,
			owner, area)
		if err != nil {
			return err
		}
		lots, err = s.scanLots(rows)
		return err
	})
	return lots, err
}

func (s *Store) GetAllLots(ctx context.Context, owner int64) ([]common.Lot, error) {
	var lots []common.Lot
	err := withRetry(ctx, "GetAllLots", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT id, user_id, name, quantity, unit, expiry_date, buy_date, area
			FROM app_inventory WHERE user_id = $1`,
			owner)
		if err != nil {
			return err
		}
		lots, err = s.scanLots(rows)
		return err
	})
	return lots, err
}

func (s *Store) DeleteLot(ctx context.Context, owner, lotID int64) error {
	return withRetry(ctx, "DeleteLot", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_inventory WHERE id = $1 AND user_id = $2", lotID, owner)
		return err
	})
}

func (s *Store) UpdateLot(ctx context.Context, owner, lotID int64, fields storage.LotUpdate) error {
	var (
		updates []string
		params  []interface{}
	)
	add := func(column string, value interface{}) {
		params = append(params, value)
		updates = append(updates, fmt.Sprintf("%s = $%d", column, len(params)))
	}
	if fields.Name != nil {
		add("name", *fields.Name)
	}
	if fields.Quantity != nil {
		add("quantity", *fields.Quantity)
	}
	if fields.Unit != nil {
		add("unit", *fields.Unit)
	}
	if fields.ExpiryDate != nil {
		add("expiry_date", nullable(*fields.ExpiryDate))
	}
	if fields.BuyDate != nil {
		add("buy_date", nullable(*fields.BuyDate))
	}
	if fields.Area != nil {
		add("area", *fields.Area)
	}
	if len(updates) == 0 {
		return nil
	}
	params = append(params, lotID, owner)
	sql := fmt.Sprintf("UPDATE app_inventory SET %s WHERE id = $%d AND user_id = $%d",
		strings.Join(updates, ", "), len(params)-1, len(params))

	return withRetry(ctx, "UpdateLot", func() error {
		_, err := s.pool.Exec(ctx, sql, params...)
		return err
	})
}

// --- 家庭成員 ---

func (s *Store) AddFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error {
	return withRetry(ctx, "AddFamilyMember", func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO app_family (user_id, name, age, gender, allergens, genetic, height, weight)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			owner, m.Name, m.Age, m.Gender, m.Allergens, m.Genetic, m.HeightCM, m.WeightKG)
		return err
	})
}

func (s *Store) GetFamilyMembers(ctx context.Context, owner int64) ([]common.FamilyMember, error) {
	var members []common.FamilyMember
	err := withRetry(ctx, "GetFamilyMembers", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT id, user_id, name, age, gender, allergens, genetic, height, weight
			FROM app_family WHERE user_id = $1`,
			owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		members = nil
		for rows.Next() {
			var m common.FamilyMember
			if err := rows.Scan(&m.ID, &m.OwnerID, &m.Name, &m.Age, &m.Gender,
				&m.Allergens, &m.Genetic, &m.HeightCM, &m.WeightKG); err != nil {
				return err
			}
			members = append(members, m)
		}
		return rows.Err()
	})
	return members, err
}

func (s *Store) UpdateFamilyMember(ctx context.Context, owner int64, m common.FamilyMember) error {
	return withRetry(ctx, "UpdateFamilyMember", func() error {
		_, err := s.pool.Exec(ctx, `
			UPDATE app_family
			SET name = $1, age = $2, gender = $3, allergens = $4, genetic = $5, height = $6, weight = $7
			WHERE id = $8 AND user_id = $9`,
			m.Name, m.Age, m.Gender, m.Allergens, m.Genetic, m.HeightCM, m.WeightKG, m.ID, owner)
		return err
	})
}

func (s *Store) DeleteFamilyMember(ctx context.Context, owner, memberID int64) error {
	return withRetry(ctx, "DeleteFamilyMember", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_family WHERE id = $1 AND user_id = $2", memberID, owner)
		return err
	})
}

// --- 設定 ---

func (s *Store) GetSetting(ctx context.Context, owner int64, key string) (string, error) {
	var value string
	err := withRetry(ctx, "GetSetting", func() error {
		err := s.pool.QueryRow(ctx,
			"SELECT value FROM app_settings WHERE user_id = $1 AND key = $2",
			owner, key).Scan(&value)
		if errors.Is(err, pgx.ErrNoRows) {
			value = ""
			return nil
		}
		return err
	})
	return value, err
}

func (s *Store) SetSetting(ctx context.Context, owner int64, key, value string) error {
	return withRetry(ctx, "SetSetting", func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO app_settings (user_id, key, value) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, key) DO UPDATE SET value = EXCLUDED.value`,
			owner, key, value)
		return err
	})
}

// --- 聊天記錄 ---

func (s *Store) AddChatMessage(ctx context.Context, owner int64, sender, message string) error {
	return withRetry(ctx, "AddChatMessage", func() error {
		_, err := s.pool.Exec(ctx,
			"INSERT INTO app_chat_history (user_id, sender, message) VALUES ($1, $2, $3)",
			owner, sender, message)
		return err
	})
}

func (s *Store) GetChatHistory(ctx context.Context, owner int64, date string) ([]common.ChatMessage, error) {
	var history []common.ChatMessage
	err := withRetry(ctx, "GetChatHistory", func() error {
		var (
			rows pgx.Rows
			err  error
		)
		if date != "" {
			rows, err = s.pool.Query(ctx, `
				SELECT sender, message, timestamp FROM app_chat_history
				WHERE user_id = $1 AND timestamp::date = $2 ORDER BY timestamp ASC`,
				owner, date)
		} else {
			rows, err = s.pool.Query(ctx, `
				SELECT sender, message, timestamp FROM app_chat_history
				WHERE user_id = $1 ORDER BY timestamp ASC`,
				owner)
		}
		if err != nil {
			return err
		}
		defer rows.Close()
		history = nil
		for rows.Next() {
			var msg common.ChatMessage
			if err := rows.Scan(&msg.Sender, &msg.Message, &msg.Timestamp); err != nil {
				return err
			}
			history = append(history, msg)
		}
		return rows.Err()
	})
	return history, err
}

func (s *Store) GetChatDates(ctx context.Context, owner int64) ([]string, error) {
	var dates []string
	err := withRetry(ctx, "GetChatDates", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT DISTINCT timestamp::date FROM app_chat_history
			WHERE user_id = $1 ORDER BY timestamp::date DESC`,
			owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		dates = nil
		for rows.Next() {
			var d time.Time
			if err := rows.Scan(&d); err != nil {
				return err
			}
			dates = append(dates, d.Format("2006-01-02"))
		}
		return rows.Err()
	})
	return dates, err
}

func (s *Store) ClearChatHistory(ctx context.Context, owner int64) error {
	return withRetry(ctx, "ClearChatHistory", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_chat_history WHERE user_id = $1", owner)
		return err
	})
}

// --- 每日食譜 ---

func (s *Store) SaveDailyRecipe(ctx context.Context, owner int64, date, content string) error {
	return withRetry(ctx, "SaveDailyRecipe", func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO app_daily_recipes (user_id, date, content) VALUES ($1, $2, $3)
			ON CONFLICT (user_id, date) DO UPDATE SET content = EXCLUDED.content`,
			owner, date, content)
		return err
	})
}

func (s *Store) GetDailyRecipe(ctx context.Context, owner int64, date string) (string, error) {
	var content string
	err := withRetry(ctx, "GetDailyRecipe", func() error {
		err := s.pool.QueryRow(ctx,
			"SELECT content FROM app_daily_recipes WHERE user_id = $1 AND date = $2",
			owner, date).Scan(&content)
		if errors.Is(err, pgx.ErrNoRows) {
			content = ""
			return nil
		}
		return err
	})
	return content, err
}

// --- 廚房設備 ---

func (s *Store) GetKitchenEquipment(ctx context.Context, owner int64) ([]string, error) {
	var equipment []string
	err := withRetry(ctx, "GetKitchenEquipment", func() error {
		rows, err := s.pool.Query(ctx,
			"SELECT equipment_name FROM app_kitchen_equipment WHERE user_id = $1", owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		equipment = nil
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				return err
			}
			equipment = append(equipment, name)
		}
		return rows.Err()
	})
	return equipment, err
}

func (s *Store) UpdateKitchenEquipment(ctx context.Context, owner int64, equipment []string) error {
	return withRetry(ctx, "UpdateKitchenEquipment", func() error {
		tx, err := s.pool.Begin(ctx)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		if _, err := tx.Exec(ctx,
			"DELETE FROM app_kitchen_equipment WHERE user_id = $1", owner); err != nil {
			return err
		}
		for _, name := range equipment {
			if _, err := tx.Exec(ctx,
				"INSERT INTO app_kitchen_equipment (user_id, equipment_name) VALUES ($1, $2)",
				owner, name); err != nil {
				return err
			}
		}
		return tx.Commit(ctx)
	})
}

// --- 熱量紀錄 ---

func (s *Store) AddCalorieRecord(ctx context.Context, owner int64, r common.CalorieRecord) (int64, error) {
	var id int64
	err := withRetry(ctx, "AddCalorieRecord", func() error {
		return s.pool.QueryRow(ctx, `
			INSERT INTO app_calories (user_id, date, meal_type, food_name, calories, note)
			VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
			owner, r.Date, r.MealType, r.FoodName, r.Calories, r.Note).Scan(&id)
	})
	return id, err
}

func (s *Store) GetCalorieRecords(ctx context.Context, owner int64, date string) ([]common.CalorieRecord, error) {
	var records []common.CalorieRecord
	err := withRetry(ctx, "GetCalorieRecords", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT id, user_id, date, meal_type, food_name, calories, note
			FROM app_calories WHERE user_id = $1 AND date = $2`,
			owner, date)
		if err != nil {
			return err
		}
		defer rows.Close()
		records = nil
		for rows.Next() {
			var (
				r    common.CalorieRecord
				d    time.Time
				note *string
			)
			if err := rows.Scan(&r.ID, &r.OwnerID, &d, &r.MealType, &r.FoodName, &r.Calories, &note); err != nil {
				return err
			}
			r.Date = d.Format("2006-01-02")
			r.Note = deref(note)
			records = append(records, r)
		}
		return rows.Err()
	})
	return records, err
}

func (s *Store) DeleteCalorieRecord(ctx context.Context, owner, recordID int64) error {
	return withRetry(ctx, "DeleteCalorieRecord", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_calories WHERE id = $1 AND user_id = $2", recordID, owner)
		return err
	})
}

func (s *Store) GetDailyCalorieTotal(ctx context.Context, owner int64, date string) (int, error) {
	var total int
	err := withRetry(ctx, "GetDailyCalorieTotal", func() error {
		return s.pool.QueryRow(ctx,
			"SELECT COALESCE(SUM(calories), 0) FROM app_calories WHERE user_id = $1 AND date = $2",
			owner, date).Scan(&total)
	})
	return total, err
}

func (s *Store) GetDailyCalorieBreakdown(ctx context.Context, owner int64, date string) (map[string]int, error) {
	breakdown := map[string]int{}
	err := withRetry(ctx, "GetDailyCalorieBreakdown", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT meal_type, SUM(calories) FROM app_calories
			WHERE user_id = $1 AND date = $2 GROUP BY meal_type`,
			owner, date)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				mealType string
				total    int
			)
			if err := rows.Scan(&mealType, &total); err != nil {
				return err
			}
			breakdown[mealType] = total
		}
		return rows.Err()
	})
	return breakdown, err
}

func (s *Store) GetWeeklyCalorieSummary(ctx context.Context, owner int64, endDate string) (map[string]int, error) {
	summary := map[string]int{}
	err := withRetry(ctx, "GetWeeklyCalorieSummary", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT date, SUM(calories) FROM app_calories
			WHERE user_id = $1 AND date <= $2 AND date > ($2::date - INTERVAL '7 days')
			GROUP BY date`,
			owner, endDate)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var (
				d     time.Time
				total int
			)
			if err := rows.Scan(&d, &total); err != nil {
				return err
			}
			summary[d.Format("2006-01-02")] = total
		}
		return rows.Err()
	})
	return summary, err
}

// --- 採買清單 ---

func (s *Store) AddShoppingItem(ctx context.Context, owner int64, itemName, quantity, unit string) error {
	return withRetry(ctx, "AddShoppingItem", func() error {
		_, err := s.pool.Exec(ctx, `
			INSERT INTO app_shopping_list (user_id, item_name, quantity, unit)
			VALUES ($1, $2, $3, $4)`,
			owner, itemName, quantity, unit)
		return err
	})
}

func (s *Store) GetShoppingList(ctx context.Context, owner int64) ([]common.ShoppingItem, error) {
	var items []common.ShoppingItem
	err := withRetry(ctx, "GetShoppingList", func() error {
		rows, err := s.pool.Query(ctx, `
			SELECT id, user_id, item_name, quantity, is_checked, unit
			FROM app_shopping_list WHERE user_id = $1 ORDER BY id DESC`,
			owner)
		if err != nil {
			return err
		}
		defer rows.Close()
		items = nil
		for rows.Next() {
			var (
				item           common.ShoppingItem
				checked        int
				quantity, unit *string
			)
			if err := rows.Scan(&item.ID, &item.OwnerID, &item.ItemName, &quantity, &checked, &unit); err != nil {
				return err
			}
			item.Quantity = deref(quantity)
			item.Unit = deref(unit)
			item.IsChecked = checked != 0
			items = append(items, item)
		}
		return rows.Err()
	})
	return items, err
}

func (s *Store) UpdateShoppingItemStatus(ctx context.Context, owner, itemID int64, checked bool) error {
	val := 0
	if checked {
		val = 1
	}
	return withRetry(ctx, "UpdateShoppingItemStatus", func() error {
		_, err := s.pool.Exec(ctx,
			"UPDATE app_shopping_list SET is_checked = $1 WHERE id = $2 AND user_id = $3",
			val, itemID, owner)
		return err
	})
}

func (s *Store) UpdateShoppingItem(ctx context.Context, owner, itemID int64, fields storage.ShoppingItemUpdate) error {
	return withRetry(ctx, "UpdateShoppingItem", func() error {
		if fields.Name != nil {
			if _, err := s.pool.Exec(ctx,
				"UPDATE app_shopping_list SET item_name = $1 WHERE id = $2 AND user_id = $3",
				*fields.Name, itemID, owner); err != nil {
				return err
			}
		}
		if fields.Quantity != nil {
			if _, err := s.pool.Exec(ctx,
				"UPDATE app_shopping_list SET quantity = $1 WHERE id = $2 AND user_id = $3",
				*fields.Quantity, itemID, owner); err != nil {
				return err
			}
		}
		if fields.Unit != nil {
			if _, err := s.pool.Exec(ctx,
				"UPDATE app_shopping_list SET unit = $1 WHERE id = $2 AND user_id = $3",
				*fields.Unit, itemID, owner); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *Store) DeleteShoppingItem(ctx context.Context, owner, itemID int64) error {
	return withRetry(ctx, "DeleteShoppingItem", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_shopping_list WHERE id = $1 AND user_id = $2", itemID, owner)
		return err
	})
}

func (s *Store) DeleteCheckedShoppingItems(ctx context.Context, owner int64) error {
	return withRetry(ctx, "DeleteCheckedShoppingItems", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_shopping_list WHERE user_id = $1 AND is_checked = 1", owner)
		return err
	})
}

func (s *Store) ClearShoppingList(ctx context.Context, owner int64) error {
	return withRetry(ctx, "ClearShoppingList", func() error {
		_, err := s.pool.Exec(ctx,
			"DELETE FROM app_shopping_list WHERE user_id = $1", owner)
		return err
	})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// nullable 空字串轉為 NULL 儲存
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

var _ storage.Store = (*Store)(nil)
