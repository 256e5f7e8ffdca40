package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Rajeshwar-203/fitness-ai-backend/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	usersCollection    = "users"
	historyCollection  = "plan_history"
	progressCollection = "progress"
	countersCollection = "counters"
)

// MongoStore keeps users, plan history and progress in three collections.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

type userDoc struct {
	Name      string    `bson:"name"`
	Email     string    `bson:"email"`
	Password  string    `bson:"password"`
	CreatedAt time.Time `bson:"created_at"`
}

type historyDoc struct {
	ID        string    `bson:"_id"`
	Kind      string    `bson:"kind"`
	Identity  string    `bson:"email"`
	CreatedAt time.Time `bson:"created_at"`
	Request   bson.Raw  `bson:"request"`
	Plan      bson.Raw  `bson:"plan"`
}

type progressDoc struct {
	ID               uint      `bson:"_id"`
	Email            string    `bson:"email"`
	Date             time.Time `bson:"date"`
	Weight           float64   `bson:"weight,omitempty"`
	CaloriesConsumed float64   `bson:"calories_consumed,omitempty"`
	WorkoutDone      string    `bson:"workout_done,omitempty"`
	Notes            string    `bson:"notes,omitempty"`
	Extra            bson.Raw  `bson:"extra,omitempty"`
	CreatedAt        time.Time `bson:"created_at"`
}

// OpenMongo connects and pings the server before returning.
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return newMongoStore(client, database), nil
}

func newMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

type counterDoc struct {
	Name string `bson:"_id"`
	Seq  uint   `bson:"seq"`
}

// EnsureIndexes creates the unique email index and the history lookup index.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = s.db.Collection(historyCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "kind", Value: 1}, {Key: "email", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("history index: %w", err)
	}
	_, err = s.db.Collection(progressCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "email", Value: 1}, {Key: "date", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("progress index: %w", err)
	}
	return nil
}

func (s *MongoStore) CreateUser(ctx context.Context, user *models.User) error {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Collection(usersCollection).InsertOne(ctx, userDoc{
		Name:      user.Name,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: user.CreatedAt,
	})
	if mongo.IsDuplicateKeyError(err) {
		return ErrDuplicateEmail
	}
	return err
}

func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc userDoc
	err := s.db.Collection(usersCollection).FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user := &models.User{Name: doc.Name, Email: doc.Email, Password: doc.Password}
	user.CreatedAt = doc.CreatedAt
	return user, nil
}

func (s *MongoStore) InsertHistory(ctx context.Context, rec *models.HistoryRecord) error {
	request, err := jsonToBSON(rec.Request)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	plan, err := jsonToBSON(rec.Plan)
	if err != nil {
		return fmt.Errorf("encode plan: %w", err)
	}
	_, err = s.db.Collection(historyCollection).InsertOne(ctx, historyDoc{
		ID:        rec.ID,
		Kind:      string(rec.Kind),
		Identity:  rec.Identity,
		CreatedAt: rec.CreatedAt,
		Request:   request,
		Plan:      plan,
	})
	return err
}

func (s *MongoStore) RecentHistory(ctx context.Context, kind models.PlanKind, identity string, limit int) ([]models.HistoryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit))
	cur, err := s.db.Collection(historyCollection).Find(ctx, bson.M{"kind": string(kind), "email": identity}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	records := []models.HistoryRecord{}
	for cur.Next(ctx) {
		var doc historyDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		request, err := bsonToJSON(doc.Request)
		if err != nil {
			return nil, err
		}
		plan, err := bsonToJSON(doc.Plan)
		if err != nil {
			return nil, err
		}
		records = append(records, models.HistoryRecord{
			ID:        doc.ID,
			Kind:      models.PlanKind(doc.Kind),
			Identity:  doc.Identity,
			CreatedAt: doc.CreatedAt,
			Request:   request,
			Plan:      plan,
		})
	}
	return records, cur.Err()
}

func (s *MongoStore) InsertProgress(ctx context.Context, entry *models.ProgressEntry) error {
	extra, err := jsonToBSON(entry.Extra)
	if err != nil {
		return fmt.Errorf("encode extra: %w", err)
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}
	id, err := s.nextSequence(ctx, progressCollection)
	if err != nil {
		return fmt.Errorf("allocate progress id: %w", err)
	}
	_, err = s.db.Collection(progressCollection).InsertOne(ctx, progressDoc{
		ID:               id,
		Email:            entry.Email,
		Date:             entry.Date,
		Weight:           entry.Weight,
		CaloriesConsumed: entry.CaloriesConsumed,
		WorkoutDone:      entry.WorkoutDone,
		Notes:            entry.Notes,
		Extra:            extra,
		CreatedAt:        entry.CreatedAt,
	})
	if err != nil {
		return err
	}
	entry.ID = id
	return nil
}

// nextSequence hands out increasing numeric ids so progress entries carry the
// same id shape on both backends.
func (s *MongoStore) nextSequence(ctx context.Context, name string) (uint, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)
	var doc counterDoc
	err := s.db.Collection(countersCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": name}, bson.M{"$inc": bson.M{"seq": 1}}, opts).
		Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (s *MongoStore) ListProgress(ctx context.Context, email string) ([]models.ProgressEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}})
	cur, err := s.db.Collection(progressCollection).Find(ctx, bson.M{"email": email}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	entries := []models.ProgressEntry{}
	for cur.Next(ctx) {
		var doc progressDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		extra, err := bsonToJSON(doc.Extra)
		if err != nil {
			return nil, err
		}
		entries = append(entries, models.ProgressEntry{
			ID:               doc.ID,
			Email:            doc.Email,
			Date:             doc.Date,
			Weight:           doc.Weight,
			CaloriesConsumed: doc.CaloriesConsumed,
			WorkoutDone:      doc.WorkoutDone,
			Notes:            doc.Notes,
			Extra:            extra,
			CreatedAt:        doc.CreatedAt,
		})
	}
	return entries, cur.Err()
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// jsonToBSON stores JSON payloads as native documents so they stay queryable.
// Arrays are wrapped under "items" since a BSON document cannot be an array.
func jsonToBSON(data []byte) (bson.Raw, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var raw bson.Raw
	if data[0] == '[' {
		wrapped := append(append([]byte(`{"items":`), data...), '}')
		if err := bson.UnmarshalExtJSON(wrapped, false, &raw); err != nil {
			return nil, err
		}
		return raw, nil
	}
	if err := bson.UnmarshalExtJSON(data, false, &raw); err != nil {
		return nil, err
	}
	return raw, nil
}

func bsonToJSON(raw bson.Raw) ([]byte, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	out, err := bson.MarshalExtJSON(raw, false, false)
	if err != nil {
		return nil, err
	}
	if _, lookupErr := raw.LookupErr("items"); lookupErr == nil {
		if elems, _ := raw.Elements(); len(elems) == 1 {
			var wrapped struct {
				Items json.RawMessage `json:"items"`
			}
			if err := json.Unmarshal(out, &wrapped); err != nil {
				return nil, err
			}
			return wrapped.Items, nil
		}
	}
	return out, nil
}
