package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"taxidesk/internal/models"
	"taxidesk/internal/repositories/interfaces"
	"taxidesk/internal/utils"
)

type invoiceRepository struct {
	collection *mongo.Collection
}

func NewInvoiceRepository(db *mongo.Database) interfaces.InvoiceRepository {
	return &invoiceRepository{collection: db.Collection("invoices")}
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	invoice.ID = primitive.NewObjectID()
	now := time.Now()
	invoice.CreatedAt = now
	invoice.UpdatedAt = now
	if invoice.Currency == "" {
		invoice.Currency = utils.DefaultCurrency
	}

	_, err := r.collection.InsertOne(ctx, invoice)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return interfaces.ErrDuplicate
		}
		return fmt.Errorf("failed to create invoice: %w", err)
	}
	return nil
}

func (r *invoiceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByBookingID(ctx context.Context, bookingID primitive.ObjectID) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"booking_id": bookingID}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by booking: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) GetByNumber(ctx context.Context, invoiceNumber string) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.collection.FindOne(ctx, bson.M{"invoice_number": invoiceNumber}).Decode(&invoice)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, interfaces.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get invoice by number: %w", err)
	}
	return &invoice, nil
}

func (r *invoiceRepository) Update(ctx context.Context, id primitive.ObjectID, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updates})
	if err != nil {
		return fmt.Errorf("failed to update invoice: %w", err)
	}
	if result.MatchedCount == 0 {
		return interfaces.ErrNotFound
	}
	return nil
}

func (r *invoiceRepository) MarkPaid(ctx context.Context, id primitive.ObjectID) error {
	now := time.Now()
	return r.Update(ctx, id, map[string]interface{}{
		"status":  models.InvoiceStatusPaid,
		"paid_at": now,
	})
}

func (r *invoiceRepository) List(ctx context.Context, params *utils.PaginationParams, status models.InvoiceStatus, vendorID *primitive.ObjectID) ([]*models.Invoice, int64, error) {
	filter := params.GetSearchFilter([]string{"invoice_number"})
	if status != "" {
		filter["status"] = status
	}
	if vendorID != nil {
		filter["vendor_id"] = *vendorID
	}

	total, err := r.collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count invoices: %w", err)
	}

	cursor, err := r.collection.Find(ctx, filter, params.GetFindOptions())
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer cursor.Close(ctx)

	var invoices []*models.Invoice
	if err := cursor.All(ctx, &invoices); err != nil {
		return nil, 0, fmt.Errorf("failed to decode invoices: %w", err)
	}
	return invoices, total, nil
}
