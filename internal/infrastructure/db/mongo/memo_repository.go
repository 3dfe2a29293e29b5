package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memoboard/memo-api/internal/core/domain"
)

const memoCollection = "memos"

type MemoRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewMemoRepository(db *mongo.Database) *MemoRepository {
	return &MemoRepository{db: db, coll: db.Collection(memoCollection)}
}

type mongoMemo struct {
	ID        int64  `bson:"_id"`
	Username  string `bson:"username"`
	Title     string `bson:"title"`
	Contents  string `bson:"contents"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *MemoRepository) Create(ctx context.Context, memo *domain.Memo) (*domain.Memo, error) {
	id, err := nextID(ctx, r.db, memoCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoMemo{
		ID:        id,
		Username:  memo.Username,
		Title:     memo.Title,
		Contents:  memo.Contents,
		CreatedAt: memo.CreatedAt.Unix(),
		UpdatedAt: memo.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert memo: %w", err)
	}

	created := *memo
	created.ID = id
	return &created, nil
}

func (r *MemoRepository) FindByID(ctx context.Context, id int64) (*domain.Memo, error) {
	var mm mongoMemo
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mm); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrMemoNotFound
		}
		return nil, fmt.Errorf("find memo: %w", err)
	}
	memo := toDomainMemo(mm)
	return &memo, nil
}

func (r *MemoRepository) FindAll(ctx context.Context) ([]domain.Memo, error) {
	cur, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	defer cur.Close(ctx)

	var memos []domain.Memo
	for cur.Next(ctx) {
		var mm mongoMemo
		if err := cur.Decode(&mm); err != nil {
			return nil, fmt.Errorf("decode memo: %w", err)
		}
		memos = append(memos, toDomainMemo(mm))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list memos: %w", err)
	}
	return memos, nil
}

func (r *MemoRepository) Update(ctx context.Context, memo *domain.Memo) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": memo.ID}, bson.M{"$set": bson.M{
		"title":      memo.Title,
		"contents":   memo.Contents,
		"updated_at": memo.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update memo: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrMemoNotFound
	}
	return nil
}

func (r *MemoRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete memo: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrMemoNotFound
	}
	return nil
}

func toDomainMemo(mm mongoMemo) domain.Memo {
	return domain.Memo{
		ID:        mm.ID,
		Username:  mm.Username,
		Title:     mm.Title,
		Contents:  mm.Contents,
		CreatedAt: unixToTime(mm.CreatedAt),
		UpdatedAt: unixToTime(mm.UpdatedAt),
	}
}
