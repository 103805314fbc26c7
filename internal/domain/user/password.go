package user

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/bookstore-lite/pkg/errors"
)

// PasswordHasher 密码存储与校验策略
type PasswordHasher interface {
	// Hash 返回写入users.password列的值
	Hash(plain string) (string, error)

	// Compare 校验明文与存储值,不匹配返回ErrInvalidCredentials
	Compare(stored, plain string) error
}

// BcryptHasher bcrypt哈希(推荐)
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher cost超出bcrypt允许范围时使用默认值
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

func (h *BcryptHasher) Compare(stored, plain string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(plain))
	if err == nil {
		return nil
	}
	// 存储值不是bcrypt格式(例如旧数据为明文)同样视为校验失败
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return ErrInvalidCredentials
	}
	return apperrors.Wrap(err, "密码验证失败")
}

// InsecurePlaintextHasher 明文存储与比较
//
// 不安全,仅用于兼容已有明文密码的数据文件。
// 密码以原样写入数据库,任何能读取数据文件的人都能看到全部密码。
type InsecurePlaintextHasher struct{}

func (InsecurePlaintextHasher) Hash(plain string) (string, error) {
	return plain, nil
}

func (InsecurePlaintextHasher) Compare(stored, plain string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(plain)) == 1 {
		return nil
	}
	return ErrInvalidCredentials
}
