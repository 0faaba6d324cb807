package mongodb

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/davicafu/sharedkernel/internal/partner/domain"
	sharedDomain "github.com/davicafu/sharedkernel/shared/domain"
	"github.com/davicafu/sharedkernel/shared/platform/persistence"
	sharedQuery "github.com/davicafu/sharedkernel/shared/platform/query"
)

// fields traduce los campos de criterio a claves del documento.
var fields = map[string]string{
	domain.FieldName:      "name",
	domain.FieldEmail:     "email",
	domain.FieldStatus:    "status",
	domain.FieldCreatedAt: "createdAt",
	"deleted_at":          "deletedAt",
	"deleted_by":          "deletedBy",
}

// PartnerRepoMongoDB implementa PartnerRepository para MongoDB.
type PartnerRepoMongoDB struct {
	coll *mongo.Collection
}

var _ domain.PartnerRepository = (*PartnerRepoMongoDB)(nil)

// NewPartnerRepoMongoDB comprueba la conexión y asegura el índice único de email.
func NewPartnerRepoMongoDB(ctx context.Context, client *mongo.Client, dbName string) (*PartnerRepoMongoDB, error) {
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("could not ping mongoDB: %w", err)
	}

	coll := client.Database(dbName).Collection("partners")
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}},
		Options: options.Index().
			SetUnique(true).
			SetName("partners_email_key").
			SetCollation(&options.Collation{Locale: "en", Strength: 2}),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create email index: %w", err)
	}
	return &PartnerRepoMongoDB{coll: coll}, nil
}

// --- Structs de BSON para el mapeo ---
// Se definen localmente para no "contaminar" el dominio con tags de BSON.

type mongoPartner struct {
	ID        string     `bson:"_id"`
	Name      string     `bson:"name"`
	Email     string     `bson:"email"`
	Status    string     `bson:"status"`
	CreatedAt time.Time  `bson:"createdAt"`
	UpdatedAt time.Time  `bson:"updatedAt"`
	DeletedAt *time.Time `bson:"deletedAt"`
	DeletedBy *string    `bson:"deletedBy"`
}

// --- Escritura ---

func (r *PartnerRepoMongoDB) Create(ctx context.Context, p domain.Snapshot) error {
	_, err := r.coll.InsertOne(ctx, toMongoPartner(p))
	return persistence.Classify(err)
}

func (r *PartnerRepoMongoDB) Update(ctx context.Context, p domain.Snapshot) error {
	mp := toMongoPartner(p)
	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": mp.ID}, mp)
	if err != nil {
		return persistence.Classify(err)
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// --- Lectura ---

func (r *PartnerRepoMongoDB) GetByID(ctx context.Context, id sharedDomain.DomainEntityId) (domain.Snapshot, error) {
	var mp mongoPartner
	if err := r.coll.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&mp); err != nil {
		return domain.Snapshot{}, err
	}
	return fromMongoPartner(mp)
}

func (r *PartnerRepoMongoDB) List(ctx context.Context, criteria sharedDomain.Criteria, page sharedQuery.OffsetPagination, sort sharedQuery.Sort) ([]domain.Snapshot, error) {
	filter, err := criteriaToMongoFilter(criteria)
	if err != nil {
		return nil, err
	}

	page = page.Normalize()
	opts := options.Find().
		SetSkip(int64(page.Offset)).
		SetLimit(int64(page.Limit)).
		SetSort(sortDocument(sort))

	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	partners := []domain.Snapshot{}
	for cursor.Next(ctx) {
		var mp mongoPartner
		if err := cursor.Decode(&mp); err != nil {
			return nil, &persistence.MappingError{Target: domain.AggregateType, Err: err}
		}
		p, err := fromMongoPartner(mp)
		if err != nil {
			return nil, err
		}
		partners = append(partners, p)
	}
	return partners, cursor.Err()
}

// --- Helpers de Mapeo y Conversión ---

func toMongoPartner(p domain.Snapshot) mongoPartner {
	mp := mongoPartner{
		ID:        p.ID.String(),
		Name:      p.Name,
		Email:     p.Email,
		Status:    string(p.Status),
		CreatedAt: p.CreatedAt.UTC(),
		UpdatedAt: p.UpdatedAt.UTC(),
	}
	if p.DeletedAt != nil {
		at := p.DeletedAt.UTC()
		mp.DeletedAt = &at
	}
	if p.DeletedBy != nil {
		by := p.DeletedBy.String()
		mp.DeletedBy = &by
	}
	return mp
}

func fromMongoPartner(mp mongoPartner) (domain.Snapshot, error) {
	id, err := sharedDomain.ParseDomainEntityId(mp.ID)
	if err != nil {
		return domain.Snapshot{}, &persistence.MappingError{Target: domain.AggregateType, Err: err}
	}
	p := domain.Snapshot{
		ID:        id,
		Name:      mp.Name,
		Email:     mp.Email,
		Status:    domain.Status(mp.Status),
		CreatedAt: mp.CreatedAt.UTC(),
		UpdatedAt: mp.UpdatedAt.UTC(),
	}
	if mp.DeletedAt != nil {
		at := mp.DeletedAt.UTC()
		p.DeletedAt = &at
	}
	if mp.DeletedBy != nil {
		by, err := sharedDomain.ParseDomainEntityId(*mp.DeletedBy)
		if err != nil {
			return domain.Snapshot{}, &persistence.MappingError{Target: domain.AggregateType, Err: err}
		}
		p.DeletedBy = &by
	}
	return p, nil
}

func sortDocument(sort sharedQuery.Sort) bson.D {
	key := "createdAt"
	if domain.SortableFields[sort.Field] {
		key = fields[sort.Field]
	}
	dir := 1
	if sort.Desc() {
		dir = -1
	}
	return bson.D{{Key: key, Value: dir}, {Key: "_id", Value: 1}}
}

// criteriaToMongoFilter mapea operadores genéricos a operadores de MongoDB.
func criteriaToMongoFilter(criteria sharedDomain.Criteria) (bson.D, error) {
	if criteria == nil {
		return bson.D{}, nil
	}
	conds := criteria.ToConditions()
	if len(conds) == 0 {
		return bson.D{}, nil
	}

	parts := make([]bson.D, 0, len(conds))
	for _, c := range conds {
		key, ok := fields[c.Field]
		if !ok {
			return nil, sharedDomain.InvalidArgument(fmt.Sprintf("unsupported filter field %q", c.Field))
		}

		var expr bson.M
		switch c.Op {
		case sharedDomain.OpEq:
			expr = bson.M{"$eq": c.Value}
		case sharedDomain.OpNeq:
			expr = bson.M{"$ne": c.Value}
		case sharedDomain.OpGt:
			expr = bson.M{"$gt": c.Value}
		case sharedDomain.OpGte:
			expr = bson.M{"$gte": c.Value}
		case sharedDomain.OpLt:
			expr = bson.M{"$lt": c.Value}
		case sharedDomain.OpLte:
			expr = bson.M{"$lte": c.Value}
		case sharedDomain.OpIsNull:
			// cubre campo ausente y null
			expr = bson.M{"$eq": nil}
		case sharedDomain.OpLike, sharedDomain.OpILike:
			pattern, _ := c.Value.(string)
			expr = bson.M{"$regex": regexp.QuoteMeta(strings.Trim(pattern, "%"))}
			if c.Op == sharedDomain.OpILike {
				expr["$options"] = "i"
			}
		default:
			return nil, sharedDomain.InvalidArgument(fmt.Sprintf("unsupported operator %q", c.Op))
		}
		parts = append(parts, bson.D{{Key: key, Value: expr}})
	}

	if len(parts) == 1 {
		return parts[0], nil
	}
	op := "$and"
	if sharedDomain.JoinOperator(criteria) == sharedDomain.OpOr {
		op = "$or"
	}
	return bson.D{{Key: op, Value: parts}}, nil
}
