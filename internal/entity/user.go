package entity

import (
	"database/sql"

	"github.com/questx-lab/eventreward/pkg/enum"
)

type UserRole string

var (
	UserRoleUser     = enum.New(UserRole("user"))
	UserRoleOperator = enum.New(UserRole("operator"))
	UserRoleAdmin    = enum.New(UserRole("admin"))
)

type InventoryItem struct {
	ItemID   string   `json:"item_id"`
	ItemType ItemType `json:"item_type"`
	Quantity int64    `json:"quantity"`
}

type Coupon struct {
	CouponID string `json:"coupon_id"`
	Quantity int64  `json:"quantity"`
}

type User struct {
	Base

	Name  string
	Role  UserRole
	Cash  int64
	Coins int64

	Inventory Array[InventoryItem] `gorm:"type:text"`
	Coupons   Array[Coupon]        `gorm:"type:text"`

	TodayLoginCount       int
	ConsecutiveLoginCount int
	ConsecutiveLoginStart sql.NullTime
	LastLoginAt           sql.NullTime
	BannedUntil           sql.NullTime
}
