package mcpserver

import (
	"context"
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (ss *StrapiServer) handleUploadMedia(ctx context.Context, req *mcp.CallToolRequest, input UploadMediaInput) (*mcp.CallToolResult, MediaFileInfo, error) {
	if input.FileName == "" {
		return errResult("fileName is required"), MediaFileInfo{}, nil
	}
	if input.DataBase64 == "" {
		return errResult("dataBase64 is required"), MediaFileInfo{}, nil
	}

	data, err := base64.StdEncoding.DecodeString(input.DataBase64)
	if err != nil {
		return errResult("dataBase64 is not valid base64: %v", err), MediaFileInfo{}, nil
	}

	var fileInfo map[string]any
	if input.AltText != "" || input.Caption != "" {
		fileInfo = map[string]any{}
		if input.AltText != "" {
			fileInfo["alternativeText"] = input.AltText
		}
		if input.Caption != "" {
			fileInfo["caption"] = input.Caption
		}
	}

	file, err := ss.client.UploadMedia(ctx, input.FileName, data, fileInfo)
	if err != nil {
		return errResult("%s", describeErr(err)), MediaFileInfo{}, nil
	}
	return nil, toMediaFileInfo(*file), nil
}

func (ss *StrapiServer) handleListMedia(ctx context.Context, req *mcp.CallToolRequest, input ListMediaInput) (*mcp.CallToolResult, ListMediaOutput, error) {
	files, pagination, err := ss.client.ListMedia(ctx, input.Page, input.PageSize)
	if err != nil {
		return errResult("%s", describeErr(err)), ListMediaOutput{}, nil
	}

	infos := make([]MediaFileInfo, len(files))
	for i, f := range files {
		infos[i] = toMediaFileInfo(f)
	}

	out := ListMediaOutput{Files: infos}
	if pagination != nil {
		out.Pagination = toPaginationInfo(*pagination)
	} else {
		out.Pagination = PaginationInfo{Page: 1, PageSize: len(infos), PageCount: 1, Total: len(infos)}
	}
	return nil, out, nil
}

func (ss *StrapiServer) handleDeleteMedia(ctx context.Context, req *mcp.CallToolRequest, input DeleteMediaInput) (*mcp.CallToolResult, DeleteMediaOutput, error) {
	if input.ID == 0 {
		return errResult("id is required"), DeleteMediaOutput{}, nil
	}

	if err := ss.client.DeleteMedia(ctx, input.ID); err != nil {
		return errResult("%s", describeErr(err)), DeleteMediaOutput{}, nil
	}
	return nil, DeleteMediaOutput{Deleted: true, ID: input.ID}, nil
}

func (ss *StrapiServer) handleStrapiRest(ctx context.Context, req *mcp.CallToolRequest, input StrapiRestInput) (*mcp.CallToolResult, StrapiRestOutput, error) {
	if input.Path == "" {
		return errResult("path is required"), StrapiRestOutput{}, nil
	}
	if !strings.HasPrefix(input.Path, "/") {
		return errResult("path must start with /, got %q", input.Path), StrapiRestOutput{}, nil
	}

	method := strings.ToUpper(input.Method)
	if method == "" {
		method = "GET"
	}
	switch method {
	case "GET", "POST", "PUT", "DELETE":
	default:
		return errResult("method must be GET, POST, PUT, or DELETE, got %q", input.Method), StrapiRestOutput{}, nil
	}

	switch input.Surface {
	case "", "admin", "public":
	default:
		return errResult("surface must be admin, public, or empty, got %q", input.Surface), StrapiRestOutput{}, nil
	}

	var params url.Values
	if len(input.Params) > 0 {
		params = url.Values{}
		for k, v := range input.Params {
			params.Set(k, v)
		}
	}

	var body any
	if len(input.Body) > 0 {
		body = input.Body
	}

	raw, err := ss.client.Request(ctx, input.Surface, method, input.Path, params, body)
	if err != nil {
		return errResult("%s", describeErr(err)), StrapiRestOutput{}, nil
	}
	return nil, StrapiRestOutput{Response: decodeAny(raw)}, nil
}
