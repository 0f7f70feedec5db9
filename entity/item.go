package entity

import (
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// Item types, as found in the "type" field of an item
const (
	ItemTypeMessage     = "message"
	ItemTypeFile        = "file"
	ItemTypeFileComment = "file_comment"
	ItemTypeChannel     = "channel"
	ItemTypeIM          = "im"
	ItemTypeGroup       = "group"
)

// Item is the target of a pin, star or reaction. It is one of *MessageItem, *FileItem,
// *FileCommentItem or *ConversationItem.
type Item interface {
	ItemType() string
	isItem()
}

// MessageItem refers to a message. Pin events embed the full message, reaction events
// only carry the channel and timestamp.
type MessageItem struct {
	Channel   string
	Timestamp *string
	Message   Message
}

// FileItem refers to a file, either by ID only or with the full file object
type FileItem struct {
	FileID string
	File   *File
}

// FileCommentItem refers to a comment on a file
type FileCommentItem struct {
	FileID    *string
	File      *File
	CommentID string
	Comment   *Comment
}

// ConversationItem refers to a channel, group or direct message conversation
type ConversationItem struct {
	Type    string // ItemTypeChannel, ItemTypeIM or ItemTypeGroup
	Channel string
}

// ItemType returns ItemTypeMessage
func (i *MessageItem) ItemType() string { return ItemTypeMessage }

// ItemType returns ItemTypeFile
func (i *FileItem) ItemType() string { return ItemTypeFile }

// ItemType returns ItemTypeFileComment
func (i *FileCommentItem) ItemType() string { return ItemTypeFileComment }

// ItemType returns the conversation type
func (i *ConversationItem) ItemType() string { return i.Type }

func (*MessageItem) isItem()      {}
func (*FileItem) isItem()         {}
func (*FileCommentItem) isItem()  {}
func (*ConversationItem) isItem() {}

// DecodeItem decodes an item object, dispatching on its "type" field
func DecodeItem(v frame.Value) (Item, error) {
	itemType, err := v.String("type")
	if err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	var item Item
	switch itemType {
	case ItemTypeMessage:
		item, err = decodeMessageItem(v)
	case ItemTypeFile:
		item, err = decodeFileItem(v)
	case ItemTypeFileComment:
		item, err = decodeFileCommentItem(v)
	case ItemTypeChannel, ItemTypeIM, ItemTypeGroup:
		item, err = decodeConversationItem(v, itemType)
	default:
		return nil, rtmerr.FromJSONDecode(v.Error("type", "unknown item type %q", itemType))
	}
	if err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return item, nil
}

func decodeMessageItem(v frame.Value) (*MessageItem, error) {
	f := v.Fields()
	item := &MessageItem{
		Channel:   f.String("channel"),
		Timestamp: f.OptString("ts"),
	}
	if obj, ok := f.OptObject("message"); ok {
		message, err := DecodeMessage(obj)
		f.Fail(err)
		item.Message = message
	}
	if err := f.Err(); err != nil {
		return nil, err
	}
	return item, nil
}

func decodeFileItem(v frame.Value) (*FileItem, error) {
	id, file, err := decodeRef(v, "file", DecodeFile, fileID)
	if err != nil {
		return nil, err
	} else if id == nil {
		return nil, v.Error("file", "missing required field")
	}
	return &FileItem{FileID: *id, File: file}, nil
}

func decodeFileCommentItem(v frame.Value) (*FileCommentItem, error) {
	fileID, file, err := decodeRef(v, "file", DecodeFile, fileID)
	if err != nil {
		return nil, err
	}
	commentID, comment, err := decodeRef(v, "file_comment", DecodeComment, commentID)
	if err != nil {
		return nil, err
	} else if commentID == nil {
		return nil, v.Error("file_comment", "missing required field")
	}
	return &FileCommentItem{FileID: fileID, File: file, CommentID: *commentID, Comment: comment}, nil
}

func decodeConversationItem(v frame.Value, itemType string) (*ConversationItem, error) {
	channel, err := v.String("channel")
	if err != nil {
		return nil, err
	}
	return &ConversationItem{Type: itemType, Channel: channel}, nil
}

// decodeRef decodes a field that holds either a bare ID string or the full object.
// It returns a nil ID if the field is absent.
func decodeRef[T any](v frame.Value, key string, decode func(frame.Value) (*T, error), idOf func(*T) string) (*string, *T, error) {
	field, ok := v.Get(key)
	if !ok {
		return nil, nil, nil
	}
	switch field.Kind() {
	case frame.String:
		id, err := v.String(key)
		if err != nil {
			return nil, nil, err
		}
		return &id, nil, nil
	case frame.Object:
		obj, err := decode(field)
		if err != nil {
			return nil, nil, err
		}
		id := idOf(obj)
		return &id, obj, nil
	default:
		return nil, nil, v.Error(key, "expected string or object, found %s", field.Kind())
	}
}

func fileID(f *File) string       { return f.ID }
func commentID(c *Comment) string { return c.ID }
