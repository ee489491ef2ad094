package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sbilibin2017/gw-expense-tracker/internal/logger"
	"github.com/sbilibin2017/gw-expense-tracker/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ExpensesCollection is the document collection holding expenses.
const ExpensesCollection = "expenses"

// ExpenseCollection is the subset of *mongo.Collection the repository needs.
type ExpenseCollection interface {
	Find(ctx context.Context, filter any, opts ...*options.FindOptions) (*mongo.Cursor, error)
	InsertOne(ctx context.Context, document any, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
	FindOneAndUpdate(ctx context.Context, filter any, update any, opts ...*options.FindOneAndUpdateOptions) *mongo.SingleResult
	FindOneAndDelete(ctx context.Context, filter any, opts ...*options.FindOneAndDeleteOptions) *mongo.SingleResult
}

// expenseDocument is the stored shape; field names follow the
// createdAt/updatedAt timestamp convention of the collection.
type expenseDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Label     string             `bson:"label"`
	Amount    float64            `bson:"amount"`
	Date      time.Time          `bson:"date"`
	Category  string             `bson:"category"`
	Type      string             `bson:"type"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d expenseDocument) toModel() models.Expense {
	return models.Expense{
		ID:        d.ID.Hex(),
		Label:     d.Label,
		Amount:    d.Amount,
		Date:      models.NewDate(d.Date.UTC().Year(), d.Date.UTC().Month(), d.Date.UTC().Day()),
		Category:  models.Category(d.Category),
		Type:      models.ExpenseType(d.Type),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// ExpenseMongoRepository stores expenses as documents.
type ExpenseMongoRepository struct {
	coll ExpenseCollection
	now  func() time.Time
}

// NewExpenseMongoRepository creates a repository over coll.
func NewExpenseMongoRepository(coll ExpenseCollection) *ExpenseMongoRepository {
	return &ExpenseMongoRepository{
		coll: coll,
		now:  func() time.Time { return time.Now().UTC().Truncate(time.Millisecond) },
	}
}

// List returns every expense, most recently created first.
func (r *ExpenseMongoRepository) List(ctx context.Context) ([]models.Expense, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		logger.Log.Infow("mongo", "collection", ExpensesCollection, "op", "find", "error", err)
		return nil, fmt.Errorf("find expenses: %w", err)
	}
	defer cur.Close(ctx)

	var docs []expenseDocument
	err = cur.All(ctx, &docs)

	logger.Log.Infow("mongo", "collection", ExpensesCollection, "op", "find", "result", len(docs), "error", err)

	if err != nil {
		return nil, fmt.Errorf("decode expenses: %w", err)
	}

	expenses := make([]models.Expense, 0, len(docs))
	for _, d := range docs {
		expenses = append(expenses, d.toModel())
	}
	return expenses, nil
}

// Create inserts a new document with a fresh ObjectID.
func (r *ExpenseMongoRepository) Create(ctx context.Context, in models.ExpenseInput) (*models.Expense, error) {
	now := r.now()
	doc := expenseDocument{
		ID:        primitive.NewObjectID(),
		Label:     in.Label,
		Amount:    in.Amount,
		Date:      in.Date.Time,
		Category:  string(in.Category),
		Type:      string(in.Type),
		CreatedAt: now,
		UpdatedAt: now,
	}

	_, err := r.coll.InsertOne(ctx, doc)

	logger.Log.Infow("mongo", "collection", ExpensesCollection, "op", "insertOne", "result", doc.ID.Hex(), "error", err)

	if err != nil {
		return nil, fmt.Errorf("insert expense: %w", err)
	}
	expense := doc.toModel()
	return &expense, nil
}

// Update $sets the present fields. It returns nil, nil when no document matches id.
func (r *ExpenseMongoRepository) Update(ctx context.Context, id string, fields models.ExpenseFields) (*models.Expense, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	set := bson.M{"updatedAt": r.now()}
	if fields.Label != nil {
		set["label"] = *fields.Label
	}
	if fields.Amount != nil {
		set["amount"] = *fields.Amount
	}
	if fields.Date != nil {
		set["date"] = fields.Date.Time
	}
	if fields.Category != nil {
		set["category"] = string(*fields.Category)
	}
	if fields.Type != nil {
		set["type"] = string(*fields.Type)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc expenseDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&doc)

	logger.Log.Infow("mongo", "collection", ExpensesCollection, "op", "findOneAndUpdate", "args", []any{id, set}, "error", err)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update expense %s: %w", id, err)
	}
	expense := doc.toModel()
	return &expense, nil
}

// Delete removes the document and reports whether it existed.
func (r *ExpenseMongoRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	var doc expenseDocument
	err = r.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)

	logger.Log.Infow("mongo", "collection", ExpensesCollection, "op", "findOneAndDelete", "args", []any{id}, "error", err)

	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("delete expense %s: %w", id, err)
	}
	return true, nil
}

// ConnectToMongoDB establishes and verifies a connection to MongoDB.
func ConnectToMongoDB(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	return client, nil
}
