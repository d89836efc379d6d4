package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/pkg/apperr"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Create ----------------

type NewOrderItem struct {
	MenuID    uint
	Quantity  int
	UnitPrice decimal.Decimal
}

// Contact overwrites the customer's stored phone/address; blank fields are ignored.
type Contact struct {
	Phone   string
	Address string
}

type NewOrder struct {
	CustomerID  uint
	Items       []NewOrderItem
	TotalAmount decimal.Decimal
	Contact     *Contact
	// PaymentSessionID is unique across orders; a second order for the same
	// session fails with InvalidState.
	PaymentSessionID string
}

// CreateOrder writes the order and all of its items in one transaction. Either
// everything is visible afterwards or nothing is.
func (r *OrderRepository) CreateOrder(ctx context.Context, in NewOrder) (uint, error) {
	const op = "repository.CreateOrder"
	if len(in.Items) == 0 {
		return 0, apperr.Validation(op, "order has no items")
	}

	var orderID uint
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkOrderReferences(tx, in); err != nil {
			return err
		}
		if err := updateContact(tx, in.CustomerID, in.Contact); err != nil {
			return err
		}

		order := entity.Order{
			CustomerID:  in.CustomerID,
			TotalAmount: utils.RoundMoney(in.TotalAmount),
			Status:      entity.StatusPending,
		}
		if sid := strings.TrimSpace(in.PaymentSessionID); sid != "" {
			order.PaymentSessionID = &sid
		}
		if err := tx.Omit(clause.Associations).Create(&order).Error; err != nil {
			return err
		}

		items := make([]entity.OrderItem, 0, len(in.Items))
		for _, it := range in.Items {
			items = append(items, entity.OrderItem{
				OrderID:  order.ID,
				MenuID:   it.MenuID,
				Quantity: it.Quantity,
				Price:    utils.RoundMoney(it.UnitPrice),
			})
		}
		if err := tx.Omit(clause.Associations).Create(&items).Error; err != nil {
			return err
		}
		orderID = order.ID
		return nil
	})
	if err != nil {
		return 0, dbErr(op, err)
	}
	return orderID, nil
}

func checkOrderReferences(tx *gorm.DB, in NewOrder) error {
	const op = "repository.CreateOrder"

	var customers int64
	if err := tx.Model(&entity.Customer{}).Where("id = ?", in.CustomerID).Count(&customers).Error; err != nil {
		return err
	}
	if customers == 0 {
		return apperr.Reference(op, fmt.Sprintf("customer %d does not exist", in.CustomerID))
	}

	seen := make(map[uint]struct{}, len(in.Items))
	ids := make([]uint, 0, len(in.Items))
	for _, it := range in.Items {
		if _, ok := seen[it.MenuID]; !ok {
			seen[it.MenuID] = struct{}{}
			ids = append(ids, it.MenuID)
		}
	}
	var found []uint
	if err := tx.Model(&entity.Menu{}).Where("id IN ?", ids).Pluck("id", &found).Error; err != nil {
		return err
	}
	if len(found) == len(ids) {
		return nil
	}
	for _, id := range found {
		delete(seen, id)
	}
	missing := make([]string, 0, len(seen))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			missing = append(missing, fmt.Sprint(id))
		}
	}
	return apperr.Reference(op, "menu item(s) do not exist: "+strings.Join(missing, ", "))
}

func updateContact(tx *gorm.DB, customerID uint, c *Contact) error {
	if c == nil {
		return nil
	}
	return updateProfile(tx, customerID, Profile{Phone: c.Phone, Address: c.Address})
}

// SessionOrder is the order a checkout session already paid for.
type SessionOrder struct {
	ID         uint
	CustomerID uint
}

// OrderForSession looks up the order created from a checkout session.
func (r *OrderRepository) OrderForSession(ctx context.Context, sessionID string) (SessionOrder, bool, error) {
	var row SessionOrder
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Select("id, customer_id").
		Where("payment_session_id = ?", sessionID).
		Limit(1).
		Scan(&row)
	if res.Error != nil {
		return SessionOrder{}, false, dbErr("repository.OrderForSession", res.Error)
	}
	return row, res.RowsAffected > 0, nil
}

// ---------------- Status ----------------

func (r *OrderRepository) GetOrderStatus(ctx context.Context, orderID uint) (entity.OrderStatus, error) {
	const op = "repository.GetOrderStatus"
	var row struct{ Status entity.OrderStatus }
	res := r.DB.WithContext(ctx).Model(&entity.Order{}).Select("status").Where("id = ?", orderID).Limit(1).Scan(&row)
	if res.Error != nil {
		return "", dbErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return "", apperr.NotFound(op, fmt.Sprintf("order %d not found", orderID))
	}
	return row.Status, nil
}

// OrderOwnedBy reports whether the order exists and belongs to the customer.
func (r *OrderRepository) OrderOwnedBy(ctx context.Context, orderID, customerID uint) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&entity.Order{}).
		Where("id = ? AND customer_id = ?", orderID, customerID).
		Count(&n).Error
	if err != nil {
		return false, dbErr("repository.OrderOwnedBy", err)
	}
	return n > 0, nil
}

// GetOrder reads the order row inside tx, locking it where the driver supports it.
func (r *OrderRepository) GetOrder(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	const op = "repository.GetOrder"
	var o entity.Order
	res := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("id = ?", orderID).Limit(1).Find(&o)
	if res.Error != nil {
		return nil, dbErr(op, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound(op, fmt.Sprintf("order %d not found", orderID))
	}
	return &o, nil
}

// StatusWrite is a guarded status update: it only applies while the row still
// has status From (and, when AssignedTo is set, that delivery user).
type StatusWrite struct {
	OrderID           uint
	From              entity.OrderStatus
	To                entity.OrderStatus
	AssignedTo        *uint
	DeliveryUserID    *uint
	ClearDeliveryUser bool
}

func (r *OrderRepository) SetOrderStatus(tx *gorm.DB, w StatusWrite) (int64, error) {
	const op = "repository.SetOrderStatus"
	if w.DeliveryUserID != nil && !w.To.CarriesAgent() {
		return 0, apperr.Validation(op, fmt.Sprintf("a delivery agent cannot be set on a %s order", w.To))
	}
	sets := map[string]any{"status": w.To}
	switch {
	case w.DeliveryUserID != nil:
		sets["delivery_user_id"] = *w.DeliveryUserID
	case w.ClearDeliveryUser:
		sets["delivery_user_id"] = nil
	}

	q := tx.Model(&entity.Order{}).Where("id = ? AND status = ?", w.OrderID, w.From)
	if w.AssignedTo != nil {
		q = q.Where("delivery_user_id = ?", *w.AssignedTo)
	}
	res := q.Updates(sets)
	if res.Error != nil {
		return 0, dbErr(op, res.Error)
	}
	return res.RowsAffected, nil
}

// ---------------- Read projections ----------------

type OrderFilter struct {
	CustomerID     uint
	DeliveryUserID uint
	Status         entity.OrderStatus
	Page           int
	Limit          int
}

type OrderItemView struct {
	MenuID   uint            `json:"menu_id"`
	Name     string          `json:"name"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

type OrderView struct {
	ID              uint               `json:"id"`
	CustomerID      uint               `json:"customer_id"`
	CustomerName    string             `json:"customer_name"`
	CustomerPhone   string             `json:"customer_phone"`
	CustomerAddress string             `json:"customer_address"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	Status          entity.OrderStatus `json:"status"`
	DeliveryUserID  *uint              `json:"delivery_user_id"`
	CreatedAt       time.Time          `json:"created_at"`
	Items           []OrderItemView    `gorm:"-" json:"items"`
}

// ListOrders returns newest orders first with their items attached.
func (r *OrderRepository) ListOrders(ctx context.Context, f OrderFilter) ([]OrderView, error) {
	const op = "repository.ListOrders"
	offset, limit := pageOf(f.Page, f.Limit)
	db := r.DB.WithContext(ctx)

	q := db.Table("orders AS o").
		Select("o.id, o.customer_id, c.full_name AS customer_name, c.phone AS customer_phone, " +
			"c.address AS customer_address, o.total_amount, o.status, o.delivery_user_id, o.created_at").
		Joins("LEFT JOIN customers c ON c.id = o.customer_id")
	if f.CustomerID != 0 {
		q = q.Where("o.customer_id = ?", f.CustomerID)
	}
	if f.DeliveryUserID != 0 {
		q = q.Where("o.delivery_user_id = ?", f.DeliveryUserID)
	}
	if f.Status != "" {
		q = q.Where("o.status = ?", f.Status)
	}

	var out []OrderView
	if err := q.Order("o.created_at DESC, o.id DESC").Limit(limit).Offset(offset).Scan(&out).Error; err != nil {
		return nil, dbErr(op, err)
	}
	if len(out) == 0 {
		return []OrderView{}, nil
	}

	ids := make([]uint, len(out))
	byID := make(map[uint]int, len(out))
	for i := range out {
		ids[i] = out[i].ID
		byID[out[i].ID] = i
		out[i].Items = []OrderItemView{}
	}

	var items []struct {
		OrderID uint
		OrderItemView
	}
	err := db.Table("order_items AS oi").
		Select("oi.order_id, oi.menu_id, m.name, oi.quantity, oi.price").
		Joins("LEFT JOIN menu m ON m.id = oi.menu_id").
		Where("oi.order_id IN ?", ids).
		Order("oi.id").
		Scan(&items).Error
	if err != nil {
		return nil, dbErr(op, err)
	}
	for _, it := range items {
		if i, ok := byID[it.OrderID]; ok {
			out[i].Items = append(out[i].Items, it.OrderItemView)
		}
	}
	return out, nil
}
