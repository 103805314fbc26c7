package gormdb

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookstore-lite/internal/domain/user"
)

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储
func NewUserRepository(db *gorm.DB) user.Repository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *user.User) error {
	model := toUserModel(u)

	if err := dbFromContext(ctx, r.db).Create(model).Error; err != nil {
		if isDuplicateError(err) {
			return user.ErrUsernameDuplicate
		}
		return dbError(err, "创建用户失败")
	}

	u.ID = model.ID
	return nil
}

// CreateIfAbsent INSERT ... ON CONFLICT DO NOTHING
// MySQL方言生成 ON DUPLICATE KEY UPDATE id=id
func (r *userRepository) CreateIfAbsent(ctx context.Context, u *user.User) (bool, error) {
	model := toUserModel(u)

	result := dbFromContext(ctx, r.db).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "username"}}, DoNothing: true}).
		Create(model)
	if result.Error != nil {
		return false, dbError(result.Error, "初始化用户失败")
	}
	if result.RowsAffected == 0 {
		return false, nil
	}

	u.ID = model.ID
	return true, nil
}

// FindByUsername 精确匹配（区分大小写）
// MySQL默认排序规则不区分大小写，这里用BINARY比较保持两种方言一致
func (r *userRepository) FindByUsername(ctx context.Context, username string) (*user.User, error) {
	db := dbFromContext(ctx, r.db)
	query := db.Where("username = ?", username)
	if db.Dialector.Name() == "mysql" {
		query = db.Where("BINARY username = ?", username)
	}

	var model UserModel
	if err := query.First(&model).Error; err != nil {
		if isNotFound(err) {
			return nil, user.ErrUserNotFound
		}
		return nil, dbError(err, "查询用户失败")
	}
	return toUserEntity(&model), nil
}

func (r *userRepository) List(ctx context.Context) ([]*user.User, error) {
	var models []UserModel
	if err := dbFromContext(ctx, r.db).Order("id ASC").Find(&models).Error; err != nil {
		return nil, dbError(err, "查询用户列表失败")
	}

	users := make([]*user.User, len(models))
	for i := range models {
		users[i] = toUserEntity(&models[i])
	}
	return users, nil
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := dbFromContext(ctx, r.db).Model(&UserModel{}).Count(&n).Error; err != nil {
		return 0, dbError(err, "统计用户失败")
	}
	return n, nil
}

func (r *userRepository) CountAdmins(ctx context.Context) (int64, error) {
	var n int64
	err := dbFromContext(ctx, r.db).Model(&UserModel{}).Where("is_admin = ?", true).Count(&n).Error
	if err != nil {
		return 0, dbError(err, "统计管理员失败")
	}
	return n, nil
}

func toUserModel(u *user.User) *UserModel {
	return &UserModel{
		Username: u.Username,
		Email:    u.Email,
		Password: u.Password,
		IsAdmin:  u.IsAdmin,
	}
}

func toUserEntity(model *UserModel) *user.User {
	return &user.User{
		ID:       model.ID,
		Username: model.Username,
		Email:    model.Email,
		Password: model.Password,
		IsAdmin:  model.IsAdmin,
	}
}
