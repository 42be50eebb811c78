package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/jpsm83/notes2025back/internal/core/domain"
)

const (
	countersCollection = "counters"
	ticketCounterID    = "note_ticket"
)

// NoteRepository implements ports.NoteRepository on MongoDB.
type NoteRepository struct {
	db       *mongo.Database
	notes    *mongo.Collection
	counters *mongo.Collection
}

func NewNoteRepository(db *mongo.Database) *NoteRepository {
	return &NoteRepository{
		db:       db,
		notes:    db.Collection(notesCollection),
		counters: db.Collection(countersCollection),
	}
}

type noteDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Ticket      int64              `bson:"ticket"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     time.Time          `bson:"due_date"`
	Priority    bool               `bson:"priority"`
	Completed   bool               `bson:"completed"`
	UserID      primitive.ObjectID `bson:"user_id"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

type noteWithOwnerDoc struct {
	noteDoc `bson:",inline"`
	Owner   struct {
		ID       primitive.ObjectID `bson:"_id"`
		Username string             `bson:"username"`
	} `bson:"owner"`
}

func (d noteDoc) toDomain() domain.Note {
	return domain.Note{
		ID:          d.ID.Hex(),
		Ticket:      d.Ticket,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate.UTC(),
		Priority:    d.Priority,
		Completed:   d.Completed,
		UserID:      d.UserID.Hex(),
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

func (d noteWithOwnerDoc) toDomain() domain.NoteWithOwner {
	return domain.NoteWithOwner{
		Note: d.noteDoc.toDomain(),
		Owner: domain.NoteOwner{
			ID:       d.Owner.ID.Hex(),
			Username: d.Owner.Username,
		},
	}
}

// EnsureIndexes creates the compound unique index enforcing per-owner title
// uniqueness, plus the owner index used by listings and the cascading delete.
func (r *NoteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "title", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "user_id", Value: 1}}},
		{Keys: bson.D{{Key: "ticket", Value: 1}}},
	}

	_, err := r.notes.Indexes().CreateMany(ctx, indexes)
	return err
}

// ownerLookup joins each note with its owner's id and username.
func ownerLookup() []bson.D {
	return []bson.D{
		{{Key: "$lookup", Value: bson.M{
			"from":         usersCollection,
			"localField":   "user_id",
			"foreignField": "_id",
			"as":           "owner",
		}}},
		{{Key: "$unwind", Value: "$owner"}},
	}
}

func (r *NoteRepository) FindAll(ctx context.Context) ([]domain.NoteWithOwner, error) {
	pipeline := append(ownerLookup(), bson.D{{Key: "$sort", Value: bson.D{{Key: "ticket", Value: 1}}}})

	cur, err := r.notes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)

	var notes []domain.NoteWithOwner
	for cur.Next(ctx) {
		var d noteWithOwnerDoc
		if err := cur.Decode(&d); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		notes = append(notes, d.toDomain())
	}
	return notes, cur.Err()
}

func (r *NoteRepository) FindByID(ctx context.Context, id string) (*domain.NoteWithOwner, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}

	pipeline := append([]bson.D{{{Key: "$match", Value: bson.M{"_id": oid}}}}, ownerLookup()...)

	cur, err := r.notes.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("find note: %w", err)
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		if err := cur.Err(); err != nil {
			return nil, fmt.Errorf("find note: %w", err)
		}
		return nil, domain.ErrNoteNotFound
	}

	var d noteWithOwnerDoc
	if err := cur.Decode(&d); err != nil {
		return nil, fmt.Errorf("decode note: %w", err)
	}
	n := d.toDomain()
	return &n, nil
}

func (r *NoteRepository) TitleTaken(ctx context.Context, userID, title, excludeID string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return false, domain.ErrUserNotFound
	}

	filter := bson.M{"user_id": oid, "title": title}
	if excludeID != "" {
		noteOID, err := primitive.ObjectIDFromHex(excludeID)
		if err != nil {
			return false, domain.ErrNoteNotFound
		}
		filter["_id"] = bson.M{"$ne": noteOID}
	}

	n, err := r.notes.CountDocuments(ctx, filter)
	if err != nil {
		return false, fmt.Errorf("title check: %w", err)
	}
	return n > 0, nil
}

// nextTicket atomically increments the note ticket counter, seeding it on
// first use so the first note ever created gets domain.TicketSeqStart.
func (r *NoteRepository) nextTicket(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(
		ctx,
		bson.M{"_id": ticketCounterID},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next ticket: %w", err)
	}
	return domain.TicketSeqStart - 1 + counter.Seq, nil
}

func (r *NoteRepository) Create(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	ownerOID, err := primitive.ObjectIDFromHex(note.UserID)
	if err != nil {
		return nil, domain.ErrUserNotFound
	}

	ticket, err := r.nextTicket(ctx)
	if err != nil {
		return nil, err
	}

	doc := noteDoc{
		Ticket:      ticket,
		Title:       note.Title,
		Description: note.Description,
		DueDate:     note.DueDate,
		Priority:    note.Priority,
		Completed:   note.Completed,
		UserID:      ownerOID,
		CreatedAt:   note.CreatedAt,
		UpdatedAt:   note.UpdatedAt,
	}

	res, err := r.notes.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("insert note: %w", err)
	}

	created := *note
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	created.Ticket = ticket
	return &created, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *domain.Note) (*domain.Note, error) {
	oid, err := primitive.ObjectIDFromHex(note.ID)
	if err != nil {
		return nil, domain.ErrNoteNotFound
	}

	set := bson.M{
		"title":       note.Title,
		"description": note.Description,
		"due_date":    note.DueDate,
		"priority":    note.Priority,
		"completed":   note.Completed,
		"updated_at":  note.UpdatedAt,
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var d noteDoc
	if err := r.notes.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrNoteNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrDuplicateTitle
		}
		return nil, fmt.Errorf("update note: %w", err)
	}

	n := d.toDomain()
	return &n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrNoteNotFound
	}

	res, err := r.notes.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNoteNotFound
	}
	return nil
}
