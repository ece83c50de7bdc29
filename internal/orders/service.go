package orders

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"cartonnerie-backend/internal/core"
	"cartonnerie-backend/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateInput struct {
	CustomerID    string
	Date          time.Time
	Items         []ItemInput
	DeclaredTotal *float64
}

// Create: nouvelle commande en PENDING. Aucun effet sur les stocks ici:
// le décrément se fait au passage à COMPLETED (pas de réservation).
func Create(db *gorm.DB, in CreateInput) (*models.Order, error) {
	var customer models.Customer
	if err := db.First(&customer, "id = ?", in.CustomerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.ValidationError{Reason: "client introuvable"}
		}
		return nil, err
	}

	items, total, err := BuildItems(in.Items)
	if err != nil {
		return nil, err
	}
	if err := CheckDeclaredTotal(in.DeclaredTotal, total); err != nil {
		return nil, err
	}

	// Les produits référencés doivent exister; le nom dénormalisé
	// est complété depuis la base s'il manque.
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.ProductID)
	}
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	names := make(map[string]string, len(products))
	for _, p := range products {
		names[p.ID] = p.NameFr
	}
	for i := range items {
		if _, ok := names[items[i].ProductID]; !ok {
			return nil, &core.ValidationError{Reason: fmt.Sprintf("produit introuvable: %s", items[i].ProductID)}
		}
		if items[i].ProductName == "" {
			items[i].ProductName = names[items[i].ProductID]
		}
	}

	date := in.Date
	if date.IsZero() {
		date = time.Now()
	}

	order := &models.Order{
		ID:           uuid.NewString(),
		CustomerID:   customer.ID,
		CustomerName: customer.Name,
		Date:         date,
		Status:       models.OrderStatusPending,
		TotalAmount:  total,
		Items:        items,
	}

	if err := db.Create(order).Error; err != nil {
		return nil, err
	}
	return order, nil
}

// Transition: changement de statut avec effets de stock.
// COMPLETED décrémente chaque ligne par UPDATE conditionnel; un seul produit
// en défaut rejette toute la complétion et la commande reste intacte.
// L'annulation ne restaure rien: rien n'a été décrémenté avant COMPLETED.
func Transition(db *gorm.DB, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	order, err := attemptTransition(db, orderID, newStatus)

	var conflict *core.ConflictError
	if errors.As(err, &conflict) {
		// Un autre opérateur a touché le stock entre-temps: état frais, dernier essai
		order, err = attemptTransition(db, orderID, newStatus)
	}
	return order, err
}

func attemptTransition(db *gorm.DB, orderID string, newStatus models.OrderStatus) (*models.Order, error) {
	if !models.ValidOrderStatus(newStatus) {
		return nil, &core.ValidationError{Reason: fmt.Sprintf("statut inconnu: %s", newStatus)}
	}

	var order models.Order
	if err := db.Preload("Items").First(&order, "id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &core.ValidationError{Reason: "commande introuvable"}
		}
		return nil, err
	}

	if !CanTransition(order.Status, newStatus) {
		return nil, &core.ValidationError{
			Reason: fmt.Sprintf("transition %s -> %s interdite", order.Status, newStatus),
		}
	}

	if newStatus != models.OrderStatusCompleted {
		// PROCESSING et CANCELLED ne touchent pas les stocks
		if err := db.Model(&models.Order{}).
			Where("id = ?", order.ID).
			Update("status", newStatus).Error; err != nil {
			return nil, err
		}
		order.Status = newStatus
		return &order, nil
	}

	needs := CompletionNeeds(order.Items)

	// Vérification préalable sur l'instantané: toutes les lignes en défaut
	// sont signalées d'un coup, pas seulement la première.
	ids := make([]string, 0, len(needs))
	for id := range needs {
		ids = append(ids, id)
	}
	var products []models.Product
	if err := db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	stocks := make(map[string]float64, len(products))
	for _, p := range products {
		stocks[p.ID] = p.Quantity
	}

	var short []string
	for id, need := range needs {
		cur, ok := stocks[id]
		if !ok || cur < need {
			short = append(short, id)
		}
	}
	if len(short) > 0 {
		sort.Strings(short)
		return nil, &core.InsufficientStockError{Entity: "product", IDs: short}
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for id, need := range needs {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND quantity >= ?", id, need).
				Update("quantity", gorm.Expr("quantity - ?", need))
			if err := guardAffected(res, "product", id); err != nil {
				return err
			}
		}

		// Le statut est gardé comme les stocks: si la commande a changé
		// entre la lecture et la transaction, tout est annulé, décréments
		// compris
		res := tx.Model(&models.Order{}).
			Where("id = ? AND status = ?", order.ID, order.Status).
			Update("status", newStatus)
		return guardAffected(res, "order", order.ID)
	})
	if err != nil {
		return nil, err
	}

	order.Status = newStatus
	return &order, nil
}

// guardAffected: un UPDATE conditionnel qui ne touche aucune ligne signifie
// que l'état a bougé depuis l'instantané. Jamais ignoré silencieusement.
func guardAffected(res *gorm.DB, entity, id string) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return &core.ConflictError{Entity: entity, ID: id}
	}
	return nil
}
