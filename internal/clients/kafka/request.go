package kafka

import (
	"strconv"

	"github.com/pkg/errors"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

const userIDField = "user_id"

func encodeRequest(userID int64) ([]byte, error) {
	msg, err := structpb.NewStruct(map[string]interface{}{
		userIDField: strconv.FormatInt(userID, 10),
	})
	if err != nil {
		return nil, err
	}
	return proto.Marshal(msg)
}

func decodeRequest(raw []byte) (int64, error) {
	var msg structpb.Struct
	if err := proto.Unmarshal(raw, &msg); err != nil {
		return 0, errors.Wrap(err, "unmarshal report request")
	}
	userID, err := strconv.ParseInt(msg.GetFields()[userIDField].GetStringValue(), 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse user id")
	}
	return userID, nil
}
