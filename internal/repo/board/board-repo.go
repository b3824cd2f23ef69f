package board_repo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Javier1520/share-board/internal/entity"
	app_error "github.com/Javier1520/share-board/internal/errors"
	"github.com/Javier1520/share-board/state"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const databaseName = "share_board"

type BoardRepo struct {
	AppState *state.AppState
}

func NewBoardRepo(appState *state.AppState) BoardRepoContract {
	return &BoardRepo{
		AppState: appState,
	}
}

func (r *BoardRepo) messages() *mongo.Collection {
	return r.AppState.Mongo.Database(databaseName).Collection("messages")
}

func (r *BoardRepo) strokes() *mongo.Collection {
	return r.AppState.Mongo.Database(databaseName).Collection("drawing_strokes")
}

// InsertMessage assigns the ObjectID before the write so the id the caller
// broadcasts is the id history readers will see. ObjectIDs sort by creation
// time, which gives the per-room retrieval order.
func (r *BoardRepo) InsertMessage(ctx context.Context, msg *entity.Message) (primitive.ObjectID, *app_error.AppError) {
	if msg.ID.IsZero() {
		msg.ID = primitive.NewObjectID()
	}

	if _, err := r.messages().InsertOne(ctx, msg); err != nil {
		return primitive.NilObjectID, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to create message: %v", err), "mongo")
	}
	return msg.ID, nil
}

func (r *BoardRepo) ListMessages(ctx context.Context, roomCode string, limit int, beforeID *string) ([]*entity.Message, *app_error.AppError) {
	// base filter: all messages in the room
	filter := bson.M{"room_code": roomCode}

	// if beforeID is provided -> filter messages with ID < beforeID
	if beforeID != nil {
		objID, err := primitive.ObjectIDFromHex(*beforeID)
		if err != nil {
			return nil, app_error.NewAppError(http.StatusBadRequest, fmt.Sprintf("error when trying to parse before_id: %v", err), "before-id")
		}
		filter["_id"] = bson.M{"$lt": objID}
	}

	cur, err := r.messages().Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: -1}}).SetLimit(int64(limit)))
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch messages: %v", err), "mongo")
	}

	defer cur.Close(ctx)

	var messages []*entity.Message
	if err := cur.All(ctx, &messages); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode messages: %v", err), "mongo")
	}

	// reverse messages to be in ascending order (oldest to newest)
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}

	return messages, nil
}

func (r *BoardRepo) InsertStroke(ctx context.Context, stroke *entity.DrawingStroke) (primitive.ObjectID, *app_error.AppError) {
	if stroke.ID.IsZero() {
		stroke.ID = primitive.NewObjectID()
	}

	if _, err := r.strokes().InsertOne(ctx, stroke); err != nil {
		return primitive.NilObjectID, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to append stroke: %v", err), "mongo")
	}
	return stroke.ID, nil
}

func (r *BoardRepo) ListStrokes(ctx context.Context, roomCode string) ([]*entity.DrawingStroke, *app_error.AppError) {
	cur, err := r.strokes().Find(ctx, bson.M{"room_code": roomCode},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to fetch strokes: %v", err), "mongo")
	}

	defer cur.Close(ctx)

	var strokes []*entity.DrawingStroke
	if err := cur.All(ctx, &strokes); err != nil {
		return nil, app_error.NewAppError(http.StatusInternalServerError, fmt.Sprintf("failed to decode strokes: %v", err), "mongo")
	}

	return strokes, nil
}
