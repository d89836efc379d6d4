package configs

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
)

// SeedAdmin creates the first super-admin from ADMIN_USERNAME/ADMIN_PASSWORD.
func SeedAdmin(db *gorm.DB, cfg SeedConfig, log *zap.Logger) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		log.Warn("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PASSWORD")
		return nil
	}

	var count int64
	if err := db.Model(&entity.Admin{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("admin already exists", zap.String("username", cfg.AdminUsername))
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}
	admin := entity.Admin{
		Username: cfg.AdminUsername,
		Password: string(hash),
		FullName: "Super Admin",
		Role:     entity.RoleSuperAdmin,
	}
	return db.Create(&admin).Error
}

// SeedFile is the YAML fixture format used for local environments.
type SeedFile struct {
	Menu []struct {
		Name        string `yaml:"name"`
		Description string `yaml:"description"`
		Price       string `yaml:"price"`
		Category    string `yaml:"category"`
		ImageURL    string `yaml:"image_url"`
	} `yaml:"menu"`
	Customers []struct {
		FullName string `yaml:"full_name"`
		Email    string `yaml:"email"`
		Password string `yaml:"password"`
		Phone    string `yaml:"phone"`
		Address  string `yaml:"address"`
	} `yaml:"customers"`
	DeliveryUsers []struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
		FullName string `yaml:"full_name"`
		Phone    string `yaml:"phone"`
		Vehicle  string `yaml:"vehicle"`
		Area     string `yaml:"area"`
	} `yaml:"delivery_users"`
}

// SeedFromFile loads fixtures from path. Rows are matched on their natural key,
// so running it twice is harmless.
func SeedFromFile(db *gorm.DB, path string, log *zap.Logger) error {
	if path == "" {
		return nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var f SeedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		for _, m := range f.Menu {
			price, err := decimal.NewFromString(strings.TrimSpace(m.Price))
			if err != nil {
				return fmt.Errorf("menu %q: price: %w", m.Name, err)
			}
			row := entity.Menu{Description: m.Description, Price: price.Round(2), Category: m.Category, ImageURL: m.ImageURL}
			if err := tx.Where(entity.Menu{Name: m.Name}).Attrs(row).FirstOrCreate(&entity.Menu{}).Error; err != nil {
				return err
			}
		}
		for _, c := range f.Customers {
			hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			row := entity.Customer{FullName: c.FullName, Password: string(hash), Phone: c.Phone, Address: c.Address}
			if err := tx.Where(entity.Customer{Email: strings.ToLower(c.Email)}).Attrs(row).FirstOrCreate(&entity.Customer{}).Error; err != nil {
				return err
			}
		}
		for _, d := range f.DeliveryUsers {
			hash, err := bcrypt.GenerateFromPassword([]byte(d.Password), bcrypt.DefaultCost)
			if err != nil {
				return err
			}
			row := entity.DeliveryUser{Password: string(hash), FullName: d.FullName, Phone: d.Phone, Vehicle: d.Vehicle, Area: d.Area}
			if err := tx.Where(entity.DeliveryUser{Username: d.Username}).Attrs(row).FirstOrCreate(&entity.DeliveryUser{}).Error; err != nil {
				return err
			}
		}
		log.Info("seed file applied",
			zap.String("path", path),
			zap.Int("menu", len(f.Menu)),
			zap.Int("customers", len(f.Customers)),
			zap.Int("delivery_users", len(f.DeliveryUsers)),
		)
		return nil
	})
}
