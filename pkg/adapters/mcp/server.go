package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/careergraph"
	"github.com/aretw0/careergraph/internal/logging"
	"github.com/aretw0/careergraph/pkg/dataset"
	"github.com/aretw0/careergraph/pkg/domain"
	"github.com/aretw0/careergraph/pkg/render"
	"github.com/aretw0/careergraph/pkg/reveal"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

const graphURI = "careergraph://graph"

// Engine defines what the MCP server needs from the graph core.
type Engine interface {
	Graph() domain.Graph
	Report() *dataset.Report
	Layout(ctx context.Context, vp domain.Viewport) ([]domain.PositionedNode, error)
}

// LayoutResponse is the structured result of get_layout.
type LayoutResponse struct {
	Viewport domain.Viewport         `json:"viewport" jsonschema_description:"The viewport the layout was computed for"`
	Nodes    []domain.PositionedNode `json:"nodes" jsonschema_description:"Positions of every placeable node"`
}

// NodeDescription is the structured result of describe_node.
type NodeDescription struct {
	Node         domain.GraphNode   `json:"node" jsonschema_description:"The node itself"`
	Slot         int                `json:"slot" jsonschema_description:"Timeline slot, -1 when the node is not on the timeline"`
	Edges        []domain.GraphEdge `json:"edges" jsonschema_description:"Edges touching the node"`
	Achievements []string           `json:"achievements,omitempty" jsonschema_description:"Ids of the achievements attached to a timeline node"`
}

// RevealStep is one entry of a reveal plan.
type RevealStep struct {
	AtMs    int64    `json:"at_ms" jsonschema_description:"Offset from the trigger in milliseconds"`
	Action  string   `json:"action" jsonschema_description:"insert-nodes or insert-edges"`
	NodeIDs []string `json:"node_ids" jsonschema_description:"Nodes inserted, or whose edges are inserted"`
}

// RevealPlanResponse is the structured result of reveal_plan.
type RevealPlanResponse struct {
	Stage string       `json:"stage" jsonschema_description:"stage or achievements"`
	Steps []RevealStep `json:"steps"`
}

// Server wraps the Engine and exposes it as an MCP Server.
type Server struct {
	engine    Engine
	logger    *slog.Logger
	mcpServer *server.MCPServer
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(engine Engine, opts ...Option) *Server {
	s := &Server{
		engine:    engine,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer("careergraph-mcp", careergraph.Version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Info("Shutdown signal received, shutting down MCP server")
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (s *Server) registerTools() {
	// TOOL: get_graph
	s.mcpServer.AddTool(mcp.NewTool("get_graph",
		mcp.WithDescription("Get the normalized career graph: nodes, edges and the timeline slot table."),
	), s.handleGetGraph)

	// TOOL: get_report
	s.mcpServer.AddTool(mcp.NewTool("get_report",
		mcp.WithDescription("Get the integrity report of the last dataset build (dropped edges, rejected nodes)."),
	), s.handleGetReport)

	// TOOL: get_layout
	layoutTool := mcp.NewTool("get_layout",
		mcp.WithDescription("Compute node positions for a viewport size in pixels."),
		mcp.WithNumber("width", mcp.Required(), mcp.Description("Viewport width")),
		mcp.WithNumber("height", mcp.Required(), mcp.Description("Viewport height")),
		mcp.WithOutputSchema[LayoutResponse](),
	)
	s.mcpServer.AddTool(layoutTool, mcp.NewStructuredToolHandler(s.handleGetLayout))

	// TOOL: describe_node
	describeTool := mcp.NewTool("describe_node",
		mcp.WithDescription("Describe one node with its edges and, for companies and schools, its achievements."),
		mcp.WithString("node_id", mcp.Required(), mcp.Description("The node id")),
		mcp.WithOutputSchema[NodeDescription](),
	)
	s.mcpServer.AddTool(describeTool, mcp.NewStructuredToolHandler(s.handleDescribeNode))

	// TOOL: reveal_plan
	planTool := mcp.NewTool("reveal_plan",
		mcp.WithDescription("List the timed insertions of the opening reveal, or of one timeline node's achievements."),
		mcp.WithString("parent_id", mcp.Description("Timeline node id (optional, defaults to the opening stage)")),
		mcp.WithOutputSchema[RevealPlanResponse](),
	)
	s.mcpServer.AddTool(planTool, mcp.NewStructuredToolHandler(s.handleRevealPlan))
}

func (s *Server) handleGetGraph(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := json.Marshal(s.engine.Graph())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode graph: %v", err)), nil
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleGetReport(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(s.engine.Report().String()), nil
}

func (s *Server) handleGetLayout(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (LayoutResponse, error) {
	width, _ := args["width"].(float64)
	height, _ := args["height"].(float64)
	vp := domain.Viewport{Width: width, Height: height}

	nodes, err := s.engine.Layout(ctx, vp)
	if err != nil {
		return LayoutResponse{}, fmt.Errorf("layout failed: %w", err)
	}
	return LayoutResponse{Viewport: vp, Nodes: nodes}, nil
}

func (s *Server) handleDescribeNode(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (NodeDescription, error) {
	id, _ := args["node_id"].(string)
	g := s.engine.Graph()
	node, ok := g.Node(id)
	if !ok {
		return NodeDescription{}, fmt.Errorf("%w: %s", domain.ErrUnknownNode, id)
	}
	return NodeDescription{
		Node:         node,
		Slot:         g.TimelineSlot(id),
		Edges:        g.EdgesTouching(id),
		Achievements: g.Achievements(id),
	}, nil
}

func (s *Server) handleRevealPlan(ctx context.Context, request mcp.CallToolRequest, args map[string]interface{}) (RevealPlanResponse, error) {
	g := s.engine.Graph()
	parent, _ := args["parent_id"].(string)

	stage, steps := reveal.StageGraph, reveal.StagePlan(g)
	if parent != "" {
		node, ok := g.Node(parent)
		if !ok || !node.Type.IsTimeline() {
			return RevealPlanResponse{}, fmt.Errorf("%w: %s is not a timeline node", domain.ErrUnknownNode, parent)
		}
		stage, steps = reveal.StageAchievements, reveal.AchievementPlan(g, parent)
	}

	resp := RevealPlanResponse{Stage: stage, Steps: make([]RevealStep, 0, len(steps))}
	for _, st := range steps {
		resp.Steps = append(resp.Steps, RevealStep{
			AtMs:    st.Delay.Milliseconds(),
			Action:  string(st.Action),
			NodeIDs: st.NodeIDs,
		})
	}
	return resp, nil
}

func (s *Server) registerResources() {
	// EXPOSE: careergraph://graph
	s.mcpServer.AddResource(mcp.NewResource(graphURI, "Career Graph",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.engine.Graph())
		if err != nil {
			return nil, fmt.Errorf("failed to encode graph: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})

	// EXPOSE: careergraph://graph.mmd
	s.mcpServer.AddResource(mcp.NewResource(graphURI+".mmd", "Career Graph (Mermaid)",
		mcp.WithMIMEType("text/vnd.mermaid"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      graphURI + ".mmd",
				MIMEType: "text/vnd.mermaid",
				Text:     render.GenerateMermaid(s.engine.Graph(), nil),
			},
		}, nil
	})
}
