package store

import (
	"errors"
	"fmt"

	"campus-map/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound 指定的地点记录不存在
var ErrNotFound = errors.New("地点记录不存在")

// LocationStore 地点仓库，负责地点记录的读写
//
// Save / Delete 会在同一个事务里完成记录写入和邻接边对齐，
// 并用行锁串行化对同一地点的并发写 (对齐要先读旧名单再算差量，
// 读到过期的旧状态会导致错误的边增删)。
type LocationStore struct {
	db *gorm.DB
}

// NewLocationStore 创建地点仓库
func NewLocationStore(db *gorm.DB) *LocationStore {
	return &LocationStore{db: db}
}

// FindByName 按名称精确查找地点；不存在时返回 (nil, nil)
func (s *LocationStore) FindByName(name string) (*model.Location, error) {
	var loc model.Location
	err := s.db.Where("name = ?", name).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("按名称查询地点失败: %w", err)
	}
	return &loc, nil
}

// FindByID 按 ID 查找地点；不存在时返回 ErrNotFound
func (s *LocationStore) FindByID(id string) (*model.Location, error) {
	var loc model.Location
	err := s.db.Where("id = ?", id).First(&loc).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("按 ID 查询地点失败: %w", err)
	}
	return &loc, nil
}

// Exists 判断指定名称的地点是否存在
func (s *LocationStore) Exists(name string) (bool, error) {
	var count int64
	if err := s.db.Model(&model.Location{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return false, fmt.Errorf("查询地点是否存在失败: %w", err)
	}
	return count > 0, nil
}

// List 返回所有可复用地点，按名称排序
// excludeGroup 不为 nil 时排除该分组的地点 (没有分组的地点保留)
func (s *LocationStore) List(excludeGroup *int) ([]model.Location, error) {
	q := s.db.Where("reusable = ?", true)
	if excludeGroup != nil {
		q = q.Where("group_id IS NULL OR group_id <> ?", *excludeGroup)
	}

	var locs []model.Location
	if err := q.Order("name").Find(&locs).Error; err != nil {
		return nil, fmt.Errorf("查询地点列表失败: %w", err)
	}
	return locs, nil
}

// Search 按名称模糊搜索地点 (不区分大小写)
func (s *LocationStore) Search(query string) ([]model.Location, error) {
	pattern := "%" + query + "%"
	var locs []model.Location
	err := s.db.
		Where("name ILIKE ? OR short_name ILIKE ?", pattern, pattern).
		Order("name").
		Find(&locs).Error
	if err != nil {
		return nil, fmt.Errorf("搜索地点失败: %w", err)
	}
	return locs, nil
}

// Save 保存地点并对齐邻接边，整体跑在一个事务里
//
// 旧状态按名称查找 (邻居名单按名称引用地点，名称就是对齐时的身份)，
// 查不到视为首次保存，跳过删除差量的计算。
func (s *LocationStore) Save(loc *model.Location) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		txStore := &LocationStore{db: tx}

		// 锁住旧记录，读取保存前的邻居名单
		var prevNames []string
		var prev model.Location
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("name = ?", loc.Name).First(&prev).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 首次保存，没有旧名单
		case err != nil:
			return fmt.Errorf("读取地点旧状态失败: %w", err)
		default:
			if loc.ID == "" {
				loc.ID = prev.ID
			}
			prevNames = prev.ConnectedNames()
		}

		if loc.ID == "" {
			loc.ID = uuid.NewString()
		}
		loc.StrID = model.URLFriendly(loc.ShortName)

		if err := tx.Save(loc).Error; err != nil {
			return fmt.Errorf("保存地点失败: %w", err)
		}

		rec := NewReconciler(txStore, NewDistanceIndex(tx))
		return rec.Reconcile(loc, prevNames, loc.ConnectedNames())
	})
}

// Delete 删除地点并清除它的所有邻接边，整体跑在一个事务里
func (s *LocationStore) Delete(id string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var loc model.Location
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", id).First(&loc).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("读取待删除地点失败: %w", err)
		}

		rec := NewReconciler(&LocationStore{db: tx}, NewDistanceIndex(tx))
		if err := rec.Purge(&loc); err != nil {
			return err
		}

		if err := tx.Delete(&loc).Error; err != nil {
			return fmt.Errorf("删除地点失败: %w", err)
		}
		return nil
	})
}

// Snapshot 读取全部地点和边，用于构建查询用的内存图
// 地点按名称排序，保证最近地点查询并列时结果稳定
func (s *LocationStore) Snapshot() ([]model.Location, []model.LocationDistance, error) {
	var locs []model.Location
	if err := s.db.Order("name").Find(&locs).Error; err != nil {
		return nil, nil, fmt.Errorf("读取地点快照失败: %w", err)
	}

	var edges []model.LocationDistance
	if err := s.db.Find(&edges).Error; err != nil {
		return nil, nil, fmt.Errorf("读取边快照失败: %w", err)
	}
	return locs, edges, nil
}
