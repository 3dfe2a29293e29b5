package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/memoboard/memo-api/internal/core/domain"
)

const commentCollection = "comments"

type CommentRepository struct {
	db   *mongo.Database
	coll *mongo.Collection
}

func NewCommentRepository(db *mongo.Database) *CommentRepository {
	return &CommentRepository{db: db, coll: db.Collection(commentCollection)}
}

type mongoComment struct {
	ID        int64  `bson:"_id"`
	MemoID    int64  `bson:"memo_id"`
	Username  string `bson:"username"`
	Contents  string `bson:"contents"`
	CreatedAt int64  `bson:"created_at"`
	UpdatedAt int64  `bson:"updated_at"`
}

func (r *CommentRepository) Create(ctx context.Context, comment *domain.Comment) (*domain.Comment, error) {
	id, err := nextID(ctx, r.db, commentCollection)
	if err != nil {
		return nil, err
	}

	doc := mongoComment{
		ID:        id,
		MemoID:    comment.MemoID,
		Username:  comment.Username,
		Contents:  comment.Contents,
		CreatedAt: comment.CreatedAt.Unix(),
		UpdatedAt: comment.UpdatedAt.Unix(),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert comment: %w", err)
	}

	created := *comment
	created.ID = id
	return &created, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id int64) (*domain.Comment, error) {
	var mc mongoComment
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&mc); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrCommentNotFound
		}
		return nil, fmt.Errorf("find comment: %w", err)
	}
	comment := toDomainComment(mc)
	return &comment, nil
}

func (r *CommentRepository) FindByMemoID(ctx context.Context, memoID int64) ([]domain.Comment, error) {
	cur, err := r.coll.Find(ctx, bson.M{"memo_id": memoID}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	defer cur.Close(ctx)

	var comments []domain.Comment
	for cur.Next(ctx) {
		var mc mongoComment
		if err := cur.Decode(&mc); err != nil {
			return nil, fmt.Errorf("decode comment: %w", err)
		}
		comments = append(comments, toDomainComment(mc))
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	return comments, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *domain.Comment) error {
	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": comment.ID}, bson.M{"$set": bson.M{
		"contents":   comment.Contents,
		"updated_at": comment.UpdatedAt.Unix(),
	}})
	if err != nil {
		return fmt.Errorf("update comment: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete comment: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrCommentNotFound
	}
	return nil
}

func (r *CommentRepository) DeleteByMemoID(ctx context.Context, memoID int64) error {
	if _, err := r.coll.DeleteMany(ctx, bson.M{"memo_id": memoID}); err != nil {
		return fmt.Errorf("delete comments for memo: %w", err)
	}
	return nil
}

func toDomainComment(mc mongoComment) domain.Comment {
	return domain.Comment{
		ID:        mc.ID,
		MemoID:    mc.MemoID,
		Username:  mc.Username,
		Contents:  mc.Contents,
		CreatedAt: unixToTime(mc.CreatedAt),
		UpdatedAt: unixToTime(mc.UpdatedAt),
	}
}
