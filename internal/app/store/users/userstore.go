// internal/app/store/users/userstore.go
package userstore

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/waygo/internal/app/system/apperr"
	"github.com/dalemusser/waygo/internal/app/system/patch"
	"github.com/dalemusser/waygo/internal/app/system/validators"
	"github.com/dalemusser/waygo/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrAlreadyExists is returned when a user with the same email or uid
	// is already registered. Callers report it as success:false, not as a
	// failure status.
	ErrAlreadyExists = apperr.New(apperr.ErrConflict, "User already exists")
	// ErrUserNotFound is returned by lookups and updates that match nothing.
	ErrUserNotFound = apperr.NotFound("User not found")
	// ErrInvalidID is returned for ids that are not 24-char hex ObjectIDs.
	ErrInvalidID = apperr.Validation("Invalid user ID")
	// ErrMissingRegistration is returned when email, name or uid is empty.
	ErrMissingRegistration = apperr.Validation("Email, name, and UID are required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("users")}
}

// List returns every user.
func (s *Store) List(ctx context.Context) ([]models.User, error) {
	cur, err := s.c.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}
	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return users, nil
}

func (s *Store) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, filter).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by exact email. Returns ErrUserNotFound on a miss.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"email": email})
}

// GetByUID looks up a user by the auth provider's identifier.
func (s *Store) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	return s.findOne(ctx, bson.M{"uid": uid})
}

// GetByID looks up a user by hex ObjectID. A malformed id returns
// ErrInvalidID without querying the database.
func (s *Store) GetByID(ctx context.Context, hexID string) (*models.User, error) {
	oid, err := primitive.ObjectIDFromHex(hexID)
	if err != nil {
		return nil, ErrInvalidID
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

// Exists reports whether a user with email exists, returning it when found.
// A miss is not an error.
func (s *Store) Exists(ctx context.Context, email string) (bool, *models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrUserNotFound) {
		return false, nil, nil
	}
	if err != nil {
		return false, nil, err
	}
	return true, u, nil
}

// Register creates a user from a first sign-in. Email, name and uid are
// required. If any user already has the email or the uid, ErrAlreadyExists
// is returned and nothing is written; the unique indexes on email and uid
// turn a concurrent duplicate insert into the same error.
//
// Empty optional fields are filled from registrationDefaults. The stored
// document is read back so the caller sees the assigned _id.
func (s *Store) Register(ctx context.Context, u models.User) (models.User, error) {
	u.Email = strings.TrimSpace(u.Email)
	u.Name = strings.TrimSpace(u.Name)
	u.UID = strings.TrimSpace(u.UID)
	if u.Email == "" || u.Name == "" || u.UID == "" {
		return models.User{}, ErrMissingRegistration
	}
	if err := patch.CheckNames(u.Extra); err != nil {
		return models.User{}, err
	}

	_, err := s.findOne(ctx, bson.M{"$or": []bson.M{{"email": u.Email}, {"uid": u.UID}}})
	switch {
	case err == nil:
		return models.User{}, ErrAlreadyExists
	case !errors.Is(err, ErrUserNotFound):
		return models.User{}, fmt.Errorf("check existing user: %w", err)
	}

	u.ID = primitive.NilObjectID
	doc, err := toDoc(u)
	if err != nil {
		return models.User{}, fmt.Errorf("encode user: %w", err)
	}
	applyDefaults(doc, time.Now().UTC())

	res, err := s.c.InsertOne(ctx, doc)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrAlreadyExists
		}
		if validators.Rejected(err) {
			return models.User{}, validators.ErrDocumentInvalid
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}

	created, err := s.findOne(ctx, bson.M{"_id": res.InsertedID})
	if err != nil {
		return models.User{}, fmt.Errorf("reload user: %w", err)
	}
	return *created, nil
}

// ReconcileOutcome says what Reconcile did.
type ReconcileOutcome int

const (
	// Unchanged: a matching user exists and nothing was written.
	Unchanged ReconcileOutcome = iota
	// StatusUpdated: a matching user exists and its status was set to Requested.
	StatusUpdated
	// Created: no matching user existed and one was inserted.
	Created
)

// Reconcile is the upsert used by the legacy PUT /user route. Users are
// matched on the (email, displayName) pair.
//
//   - match and incoming status "Requested": only status and updatedAt change
//   - match and any other status: no write
//   - no match: the incoming record is inserted with fresh timestamps
//
// The insert is an upsert keyed on the same pair so a concurrent request that
// created the user first is not duplicated. If the email is already taken by
// a user with a different displayName the unique email index rejects the
// insert and ErrAlreadyExists is returned.
func (s *Store) Reconcile(ctx context.Context, in models.User) (models.User, ReconcileOutcome, error) {
	if strings.TrimSpace(in.Email) == "" || strings.TrimSpace(in.DisplayName) == "" {
		return models.User{}, Unchanged, apperr.Validation("Email and displayName are required")
	}
	if err := patch.CheckNames(in.Extra); err != nil {
		return models.User{}, Unchanged, err
	}
	filter := bson.M{"email": in.Email, "displayName": in.DisplayName}

	existing, err := s.findOne(ctx, filter)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return models.User{}, Unchanged, fmt.Errorf("find user: %w", err)
	}

	now := time.Now().UTC()
	if existing != nil {
		if in.Status != models.UserStatusRequested {
			return *existing, Unchanged, nil
		}
		_, err := s.c.UpdateOne(ctx, bson.M{"_id": existing.ID}, bson.M{
			"$set": bson.M{"status": in.Status, "updatedAt": now},
		})
		if err != nil {
			return models.User{}, Unchanged, fmt.Errorf("update user status: %w", err)
		}
		merged := *existing
		merged.Status = in.Status
		merged.UpdatedAt = now
		return merged, StatusUpdated, nil
	}

	in.ID = primitive.NilObjectID
	doc, err := toDoc(in)
	if err != nil {
		return models.User{}, Unchanged, fmt.Errorf("encode user: %w", err)
	}
	doc["createdAt"] = now
	doc["updatedAt"] = now
	doc["timestamp"] = now.UnixMilli()

	opts := options.Update().SetUpsert(true)
	res, err := s.c.UpdateOne(ctx, filter, bson.M{"$setOnInsert": doc}, opts)
	if err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, Unchanged, ErrAlreadyExists
		}
		if validators.Rejected(err) {
			return models.User{}, Unchanged, validators.ErrDocumentInvalid
		}
		return models.User{}, Unchanged, fmt.Errorf("upsert user: %w", err)
	}

	created, err := s.findOne(ctx, filter)
	if err != nil {
		return models.User{}, Unchanged, fmt.Errorf("reload user: %w", err)
	}
	if res.UpsertedCount == 0 {
		return *created, Unchanged, nil
	}
	return *created, Created, nil
}

// PatchByUID applies fields as a partial update to the user with uid and
// returns the updated record. updatedAt is always refreshed. Keys that
// would touch _id or createdAt, or that are update operators, are rejected.
// Fields outside the model are stored and come back in User.Extra. A value
// the collection validator refuses is a validation error.
func (s *Store) PatchByUID(ctx context.Context, uid string, fields map[string]any) (models.User, error) {
	set, err := patch.Set(fields, time.Now().UTC(), "createdAt")
	if err != nil {
		return models.User{}, err
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err = s.c.FindOneAndUpdate(ctx, bson.M{"uid": uid}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		if wafflemongo.IsDup(err) {
			return models.User{}, apperr.New(apperr.ErrConflict, "Email or UID already in use")
		}
		if validators.Rejected(err) {
			return models.User{}, validators.ErrDocumentInvalid
		}
		return models.User{}, fmt.Errorf("patch user: %w", err)
	}
	return u, nil
}

// RolePatch holds the fields the admin role screen may change. Nil means
// leave as is.
type RolePatch struct {
	Role        *string
	Name        *string
	DisplayName *string
}

func (p RolePatch) empty() bool {
	return p.Role == nil && p.Name == nil && p.DisplayName == nil
}

// PatchRoleByEmail updates role and identity labels for the user with email.
// It distinguishes a missing user (ErrUserNotFound) from a request whose
// values already match (apperr.ErrNoOpUpdate).
func (s *Store) PatchRoleByEmail(ctx context.Context, email string, p RolePatch) (models.User, error) {
	if p.empty() {
		return models.User{}, apperr.Validation("Nothing to update")
	}

	existing, err := s.GetByEmail(ctx, email)
	if err != nil {
		return models.User{}, err
	}

	set := bson.M{}
	if p.Role != nil && *p.Role != existing.Role {
		set["role"] = *p.Role
	}
	if p.Name != nil && *p.Name != existing.Name {
		set["name"] = *p.Name
	}
	if p.DisplayName != nil && *p.DisplayName != existing.DisplayName {
		set["displayName"] = *p.DisplayName
	}
	if len(set) == 0 {
		return models.User{}, apperr.New(apperr.ErrNoOpUpdate, "No changes made to user")
	}
	set["updatedAt"] = time.Now().UTC()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var u models.User
	err = s.c.FindOneAndUpdate(ctx, bson.M{"_id": existing.ID}, bson.M{"$set": set}, opts).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return models.User{}, ErrUserNotFound
		}
		if validators.Rejected(err) {
			return models.User{}, validators.ErrDocumentInvalid
		}
		return models.User{}, fmt.Errorf("patch user role: %w", err)
	}
	return u, nil
}
