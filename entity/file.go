package entity

import (
	"heckel.io/rtmtail/frame"
	"heckel.io/rtmtail/rtmerr"
)

// File is an uploaded file, snippet or post
type File struct {
	ID            string
	Created       *int64
	Timestamp     *int64
	Name          *string
	Title         *string
	Mimetype      *string
	Filetype      *string
	PrettyType    *string
	User          *string
	Size          *int64
	URLPrivate    *string
	Permalink     *string
	IsPublic      *bool
	Channels      []string
	Groups        []string
	CommentsCount *int64
}

// Comment is a comment on a file
type Comment struct {
	ID        string
	Created   *int64
	Timestamp *int64
	User      *string
	Comment   *string
}

// DecodeFile decodes a file object
func DecodeFile(v frame.Value) (*File, error) {
	f := v.Fields()
	file := &File{
		ID:            f.String("id"),
		Created:       f.OptInt("created"),
		Timestamp:     f.OptInt("timestamp"),
		Name:          f.OptString("name"),
		Title:         f.OptString("title"),
		Mimetype:      f.OptString("mimetype"),
		Filetype:      f.OptString("filetype"),
		PrettyType:    f.OptString("pretty_type"),
		User:          f.OptString("user"),
		Size:          f.OptInt("size"),
		URLPrivate:    f.OptString("url_private"),
		Permalink:     f.OptString("permalink"),
		IsPublic:      f.OptBool("is_public"),
		Channels:      f.OptStrings("channels"),
		Groups:        f.OptStrings("groups"),
		CommentsCount: f.OptInt("comments_count"),
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return file, nil
}

// DecodeComment decodes a file comment object
func DecodeComment(v frame.Value) (*Comment, error) {
	f := v.Fields()
	comment := &Comment{
		ID:        f.String("id"),
		Created:   f.OptInt("created"),
		Timestamp: f.OptInt("timestamp"),
		User:      f.OptString("user"),
		Comment:   f.OptString("comment"),
	}
	if err := f.Err(); err != nil {
		return nil, rtmerr.FromJSONDecode(err)
	}
	return comment, nil
}
