package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/yeisme/filevault/pkg/internal/model"
)

const (
	filesCollection = "files"
	usersCollection = "users"
)

// MongoStore 基于 MongoDB 的实现.
type MongoStore struct {
	db    *mongo.Database
	files *mongo.Collection
	users *mongo.Collection
}

var _ Store = (*MongoStore)(nil)

type fileDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	UserID    string        `bson:"userId"`
	Name      string        `bson:"name"`
	Type      string        `bson:"type"`
	ParentID  string        `bson:"parentId"`
	IsPublic  bool          `bson:"isPublic"`
	LocalPath string        `bson:"localPath,omitempty"`
	CreatedAt time.Time     `bson:"createdAt"`
}

type userDoc struct {
	ID        bson.ObjectID `bson:"_id"`
	Email     string        `bson:"email"`
	Password  string        `bson:"password"`
	CreatedAt time.Time     `bson:"createdAt"`
}

func toFileDoc(f *model.File) fileDoc {
	return fileDoc{
		ID:        f.ID.ObjectID(),
		UserID:    f.UserID,
		Name:      f.Name,
		Type:      string(f.Type),
		ParentID:  f.ParentID,
		IsPublic:  f.IsPublic,
		LocalPath: f.LocalPath,
		CreatedAt: f.CreatedAt,
	}
}

func (d fileDoc) model() model.File {
	return model.File{
		ID:        model.ID(d.ID),
		UserID:    d.UserID,
		Name:      d.Name,
		Type:      model.FileType(d.Type),
		ParentID:  d.ParentID,
		IsPublic:  d.IsPublic,
		LocalPath: d.LocalPath,
		CreatedAt: d.CreatedAt,
	}
}

func (d userDoc) model() *model.User {
	return &model.User{
		ID:        model.ID(d.ID),
		Email:     d.Email,
		Password:  d.Password,
		CreatedAt: d.CreatedAt,
	}
}

// NewMongoStore 创建存储并确保索引.
func NewMongoStore(ctx context.Context, db *mongo.Database) (*MongoStore, error) {
	s := &MongoStore{
		db:    db,
		files: db.Collection(filesCollection),
		users: db.Collection(usersCollection),
	}

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("create users index: %w", err)
	}

	_, err = s.files.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "parentId", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("create files index: %w", err)
	}

	return s, nil
}

// Name 返回后端名称.
func (s *MongoStore) Name() string {
	return "mongodb:" + s.db.Name()
}

func fileFilter(filter FileFilter) bson.D {
	d := bson.D{}
	if filter.ID != nil {
		d = append(d, bson.E{Key: "_id", Value: filter.ID.ObjectID()})
	}

	if filter.UserID != "" {
		d = append(d, bson.E{Key: "userId", Value: filter.UserID})
	}

	if filter.ParentID != nil {
		d = append(d, bson.E{Key: "parentId", Value: *filter.ParentID})
	}

	return d
}

// InsertFile 插入文件记录.
func (s *MongoStore) InsertFile(ctx context.Context, f *model.File) error {
	if f.ID.IsZero() {
		f.ID = model.NewID()
	}

	if f.CreatedAt.IsZero() {
		f.CreatedAt = time.Now()
	}

	if _, err := s.files.InsertOne(ctx, toFileDoc(f)); err != nil {
		return fmt.Errorf("insert file: %w", translateMongo(err))
	}

	return nil
}

// FindFile 查找单条文件记录.
func (s *MongoStore) FindFile(ctx context.Context, filter FileFilter) (*model.File, error) {
	var doc fileDoc
	if err := s.files.FindOne(ctx, fileFilter(filter)).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}

	f := doc.model()

	return &f, nil
}

// FindFiles 分页查询，保持集合的自然顺序.
func (s *MongoStore) FindFiles(ctx context.Context, filter FileFilter, skip, limit int) ([]model.File, error) {
	opts := options.Find().SetSkip(int64(skip)).SetLimit(int64(limit))

	cur, err := s.files.Find(ctx, fileFilter(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("find files: %w", err)
	}

	var docs []fileDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode files: %w", err)
	}

	files := make([]model.File, 0, len(docs))
	for _, d := range docs {
		files = append(files, d.model())
	}

	return files, nil
}

// SetFilePublic 更新公开标记并返回更新后的记录.
func (s *MongoStore) SetFilePublic(ctx context.Context, filter FileFilter, isPublic bool) (*model.File, error) {
	update := bson.D{{Key: "$set", Value: bson.D{{Key: "isPublic", Value: isPublic}}}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc fileDoc
	if err := s.files.FindOneAndUpdate(ctx, fileFilter(filter), update, opts).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}

	f := doc.model()

	return &f, nil
}

// CountFiles 统计文件记录数.
func (s *MongoStore) CountFiles(ctx context.Context) (int64, error) {
	n, err := s.files.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count files: %w", err)
	}

	return n, nil
}

// InsertUser 插入用户.
func (s *MongoStore) InsertUser(ctx context.Context, u *model.User) error {
	if u.ID.IsZero() {
		u.ID = model.NewID()
	}

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	doc := userDoc{ID: u.ID.ObjectID(), Email: u.Email, Password: u.Password, CreatedAt: u.CreatedAt}
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert user: %w", translateMongo(err))
	}

	return nil
}

// FindUserByEmail 按邮箱查找用户.
func (s *MongoStore) FindUserByEmail(ctx context.Context, email string) (*model.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}

	return doc.model(), nil
}

// FindUserByID 按 ID 查找用户.
func (s *MongoStore) FindUserByID(ctx context.Context, id model.ID) (*model.User, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, bson.D{{Key: "_id", Value: id.ObjectID()}}).Decode(&doc); err != nil {
		return nil, translateMongo(err)
	}

	return doc.model(), nil
}

// CountUsers 统计用户数.
func (s *MongoStore) CountUsers(ctx context.Context) (int64, error) {
	n, err := s.users.CountDocuments(ctx, bson.D{})
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return n, nil
}

// Ping 检查主节点可用性.
func (s *MongoStore) Ping(ctx context.Context) error {
	return s.db.Client().Ping(ctx, readpref.Primary())
}

// Close 断开客户端连接.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.db.Client().Disconnect(ctx)
}

func translateMongo(err error) error {
	switch {
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return fmt.Errorf("%w: %w", ErrDuplicate, err)
	default:
		return err
	}
}
