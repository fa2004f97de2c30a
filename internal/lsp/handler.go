package lsp

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"fwdgen/internal/config"
	"fwdgen/internal/expand"

	"github.com/tliron/commonlog"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const serverName = "fwd"

// Define the set of supported semantic token types advertised in the legend
var SemanticTokenTypes = []string{
	"namespace",
	"type",
	"typeParameter",
	"function",
	"parameter",
	"property",
	"keyword",
	"macro",
}

// Define the set of supported semantic token modifiers
var SemanticTokenModifiers = []string{
	"declaration",
	"readonly",
}

// FwdHandler implements the LSP server handlers for files carrying fwd! invocations
type FwdHandler struct {
	mu       sync.RWMutex
	docs     map[protocol.DocumentUri]*document
	expander *expand.Expander
	version  string
	log      commonlog.Logger
}

// document is an open editor buffer and its last expansion
type document struct {
	content string
	result  *expand.Result
}

// NewFwdHandler creates a handler expanding the macros configured in cfg.
// A nil cfg uses the defaults.
func NewFwdHandler(cfg *config.Config, version string) *FwdHandler {
	return &FwdHandler{
		docs:     make(map[protocol.DocumentUri]*document),
		expander: expand.NewExpander(cfg),
		version:  version,
		log:      commonlog.GetLogger("fwd.lsp"),
	}
}

// Protocol wires the handler methods into a glsp protocol handler.
func (h *FwdHandler) Protocol() *protocol.Handler {
	return &protocol.Handler{
		Initialize:                     h.Initialize,
		Initialized:                    h.Initialized,
		Shutdown:                       h.Shutdown,
		SetTrace:                       h.SetTrace,
		TextDocumentDidOpen:            h.TextDocumentDidOpen,
		TextDocumentDidClose:           h.TextDocumentDidClose,
		TextDocumentDidChange:          h.TextDocumentDidChange,
		TextDocumentHover:              h.TextDocumentHover,
		TextDocumentSemanticTokensFull: h.TextDocumentSemanticTokensFull,
	}
}

// Initialize responds to the LSP client's initialize request and advertises the server's capabilities
func (h *FwdHandler) Initialize(ctx *glsp.Context, params *protocol.InitializeParams) (any, error) {
	h.log.Info("initialize")

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: ptrBool(true),
				Change:    ptrSyncKind(protocol.TextDocumentSyncKindFull),
			},
			HoverProvider: true,
			SemanticTokensProvider: &protocol.SemanticTokensOptions{
				Legend: protocol.SemanticTokensLegend{
					TokenTypes:     SemanticTokenTypes,
					TokenModifiers: SemanticTokenModifiers,
				},
				Full: ptrBool(true),
			},
		},
		ServerInfo: &protocol.InitializeResultServerInfo{
			Name:    serverName,
			Version: &h.version,
		},
	}, nil
}

// Initialized is called after the client receives the server's capabilities
func (h *FwdHandler) Initialized(ctx *glsp.Context, params *protocol.InitializedParams) error {
	return nil
}

// Shutdown handles the LSP shutdown request
func (h *FwdHandler) Shutdown(ctx *glsp.Context) error {
	h.log.Info("shutdown")
	return nil
}

func (h *FwdHandler) SetTrace(ctx *glsp.Context, params *protocol.SetTraceParams) error {
	return nil
}

// TextDocumentDidOpen handles file open notifications from the editor
func (h *FwdHandler) TextDocumentDidOpen(ctx *glsp.Context, params *protocol.DidOpenTextDocumentParams) error {
	h.log.Debugf("opened %s", params.TextDocument.URI)
	_, err := h.update(ctx, params.TextDocument.URI, params.TextDocument.Text)
	return err
}

// TextDocumentDidChange handles file change notifications. Sync is full, so
// the last change carries the whole document.
func (h *FwdHandler) TextDocumentDidChange(ctx *glsp.Context, params *protocol.DidChangeTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debugf("changed %s", uri)

	if len(params.ContentChanges) == 0 {
		return nil
	}

	var text string
	switch change := params.ContentChanges[len(params.ContentChanges)-1].(type) {
	case protocol.TextDocumentContentChangeEventWhole:
		text = change.Text
	case protocol.TextDocumentContentChangeEvent:
		if change.Range != nil {
			return fmt.Errorf("incremental change to %s not supported", uri)
		}
		text = change.Text
	default:
		return fmt.Errorf("unexpected change event %T for %s", change, uri)
	}

	_, err := h.update(ctx, uri, text)
	return err
}

// TextDocumentDidClose forgets the document and clears its diagnostics
func (h *FwdHandler) TextDocumentDidClose(ctx *glsp.Context, params *protocol.DidCloseTextDocumentParams) error {
	uri := params.TextDocument.URI
	h.log.Debugf("closed %s", uri)

	h.mu.Lock()
	delete(h.docs, uri)
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, []protocol.Diagnostic{})
	return nil
}

// TextDocumentHover shows the code generated by the invocation under the cursor
func (h *FwdHandler) TextDocumentHover(ctx *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	offset := offsetAt(doc.content, params.Position)
	exp := doc.result.ExpansionAt(offset)
	if exp == nil || exp.Decl == nil || len(exp.Functions) == 0 {
		return nil, nil
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```rust\n%s\n```", exp.Functions.Format("")),
		},
	}, nil
}

// TextDocumentSemanticTokensFull handles semantic token requests for the entire document
func (h *FwdHandler) TextDocumentSemanticTokensFull(ctx *glsp.Context, params *protocol.SemanticTokensParams) (*protocol.SemanticTokens, error) {
	doc, err := h.getOrLoad(ctx, params.TextDocument.URI)
	if err != nil {
		return nil, err
	}

	tokens := collectSemanticTokens(doc.result)

	var data []uint32
	var prevLine, prevStart uint32

	// Encode tokens into LSP wire format (using delta-line, delta-start compression)
	for _, token := range tokens {
		deltaLine := token.Line - prevLine
		var deltaStart uint32
		if deltaLine == 0 {
			deltaStart = token.StartChar - prevStart
		} else {
			deltaStart = token.StartChar
		}

		data = append(data, deltaLine, deltaStart, token.Length, uint32(token.TokenType), uint32(token.TokenModifiers))

		prevLine = token.Line
		prevStart = token.StartChar
	}

	return &protocol.SemanticTokens{
		Data: data,
	}, nil
}

// getOrLoad returns the open document, reading it from disk when the editor
// never opened it.
func (h *FwdHandler) getOrLoad(ctx *glsp.Context, uri protocol.DocumentUri) (*document, error) {
	h.mu.RLock()
	doc, ok := h.docs[uri]
	h.mu.RUnlock()
	if ok {
		return doc, nil
	}

	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	return h.update(ctx, uri, string(content))
}

// update expands content, stores it and publishes its diagnostics.
func (h *FwdHandler) update(ctx *glsp.Context, uri protocol.DocumentUri, content string) (*document, error) {
	path, err := uriToPath(uri)
	if err != nil {
		return nil, err
	}

	doc := &document{content: content, result: h.expander.ExpandSource(path, content)}

	h.mu.Lock()
	h.docs[uri] = doc
	h.mu.Unlock()

	sendDiagnosticNotification(ctx, uri, ConvertDiagnostics(doc.result.Diagnostics))
	return doc, nil
}

// Convert URI to platform-local file path
func uriToPath(rawURI string) (string, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return "", fmt.Errorf("invalid URI %s: %w", rawURI, err)
	}

	path := u.Path

	// On Windows, remove leading slash (e.g., /C:/...) to get C:/...
	if runtime.GOOS == "windows" && strings.HasPrefix(path, "/") && len(path) > 3 && path[2] == ':' {
		path = path[1:]
	}

	return filepath.FromSlash(path), nil
}

// offsetAt converts a 0-based LSP position to a byte offset in content.
// Characters are counted as bytes, matching the columns of the diagnostics.
func offsetAt(content string, pos protocol.Position) int {
	offset := 0
	for line := protocol.UInteger(0); line < pos.Line; line++ {
		next := strings.IndexByte(content[offset:], '\n')
		if next < 0 {
			return len(content)
		}
		offset += next + 1
	}

	lineEnd := strings.IndexByte(content[offset:], '\n')
	if lineEnd < 0 {
		lineEnd = len(content) - offset
	}
	return offset + min(int(pos.Character), lineEnd)
}

func sendDiagnosticNotification(ctx *glsp.Context, uri protocol.DocumentUri, diagnostics []protocol.Diagnostic) {
	if ctx == nil || ctx.Notify == nil {
		return
	}
	ctx.Notify(protocol.ServerTextDocumentPublishDiagnostics, protocol.PublishDiagnosticsParams{
		URI:         uri,
		Diagnostics: diagnostics,
	})
}

func ptrBool(b bool) *bool {
	return &b
}

func ptrSyncKind(k protocol.TextDocumentSyncKind) *protocol.TextDocumentSyncKind {
	return &k
}
