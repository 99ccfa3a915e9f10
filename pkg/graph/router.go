package graph

import (
	"fmt"

	"github.com/miriamsimone/video-generation-pipeline/pkg/domain"
)

// Planner maps (current, target) state pairs to an ordered list of playable
// segments over a fixed edge table.
type Planner struct {
	edges []Edge
}

// Option configures a Planner.
type Option func(*Planner)

// WithEdges overrides the default edge table, e.g. for tests or a reduced
// asset set.
func WithEdges(edges []Edge) Option {
	return func(p *Planner) {
		p.edges = edges
	}
}

// NewPlanner creates a route planner over the default edge table.
func NewPlanner(opts ...Option) *Planner {
	p := &Planner{edges: DefaultEdges()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// PlanRoute plans a route from current to target.
//
// Same state yields an empty route. Same pose yields the shortest expression
// path at that pose. A pose change neutralizes the expression first, hops
// poses through center while neutral, then re-expresses at the target pose.
// If any required leg has no rendered path, PlanRoute returns an empty route
// and domain.ErrRouteNotFound; the caller is expected to jump-cut.
func (p *Planner) PlanRoute(current, target domain.State) (domain.Route, error) {
	if err := validateState(current); err != nil {
		return nil, err
	}
	if err := validateState(target); err != nil {
		return nil, err
	}
	if current == target {
		return nil, nil
	}

	if current.Pose == target.Pose {
		route, ok := p.expressionLeg(current.Expression, target.Expression, current.Pose)
		if !ok {
			return nil, routeErr(current, target)
		}
		return route, nil
	}

	// Pose change: neutralize, hop poses at neutral, re-express.
	neutralize, ok := p.expressionLeg(current.Expression, domain.ExprNeutral, current.Pose)
	if !ok {
		return nil, routeErr(current, target)
	}
	hop := poseLeg(current.Pose, target.Pose)
	reexpress, ok := p.expressionLeg(domain.ExprNeutral, target.Expression, target.Pose)
	if !ok {
		return nil, routeErr(current, target)
	}

	route := make(domain.Route, 0, len(neutralize)+len(hop)+len(reexpress))
	route = append(route, neutralize...)
	route = append(route, hop...)
	route = append(route, reexpress...)
	return route, nil
}

func validateState(s domain.State) error {
	if !s.Expression.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownExpression, s.Expression)
	}
	if !s.Pose.Valid() {
		return fmt.Errorf("%w: %q", domain.ErrUnknownPose, s.Pose)
	}
	return nil
}

func routeErr(current, target domain.State) error {
	return fmt.Errorf("%w: %s to %s", domain.ErrRouteNotFound, current, target)
}

// expressionLeg finds the shortest expression path at a fixed pose via
// breadth-first search over the edges available there. Ties are broken by
// edge table order, keeping the result deterministic.
func (p *Planner) expressionLeg(from, to domain.Expression, pose domain.Pose) (domain.Route, bool) {
	if from == to {
		return nil, true
	}

	type hop struct {
		prev domain.Expression
		edge Edge
	}
	visited := map[domain.Expression]hop{from: {}}
	queue := []domain.Expression{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur == to {
			break
		}
		for _, e := range p.edges {
			if !e.At(pose) {
				continue
			}
			var next domain.Expression
			switch cur {
			case e.Start:
				next = e.End
			case e.End:
				next = e.Start
			default:
				continue
			}
			if _, seen := visited[next]; seen {
				continue
			}
			visited[next] = hop{prev: cur, edge: e}
			queue = append(queue, next)
		}
	}

	if _, found := visited[to]; !found {
		return nil, false
	}

	// Walk predecessors back to the start, then reverse.
	var rev domain.Route
	for cur := to; cur != from; {
		h := visited[cur]
		rev = append(rev, expressionSegment(h.edge, h.prev, cur, pose))
		cur = h.prev
	}
	route := make(domain.Route, 0, len(rev))
	for i := len(rev) - 1; i >= 0; i-- {
		route = append(route, rev[i])
	}
	return route, true
}

// expressionSegment builds the directed traversal of edge from -> to at pose.
func expressionSegment(e Edge, from, to domain.Expression, pose domain.Pose) domain.Segment {
	dir := domain.Forward
	if from == e.End {
		dir = domain.Backward
	}
	return domain.Segment{
		PathID:    domain.ExpressionPathID(e.Start, e.End, pose),
		Direction: dir,
		From:      domain.State{Expression: from, Pose: pose},
		To:        domain.State{Expression: to, Pose: pose},
	}
}

// poseLeg connects two poses while the expression is held at neutral.
// Pose sequences are stored center-to-variant, so leaving a variant plays
// its sequence backward. Two non-center poses always hop through center.
func poseLeg(from, to domain.Pose) domain.Route {
	if from == to {
		return nil
	}
	if from.IsCenter() {
		return domain.Route{poseSegment(to, domain.Forward, from, to)}
	}
	if to.IsCenter() {
		return domain.Route{poseSegment(from, domain.Backward, from, to)}
	}
	return domain.Route{
		poseSegment(from, domain.Backward, from, domain.PoseCenter),
		poseSegment(to, domain.Forward, domain.PoseCenter, to),
	}
}

func poseSegment(variant domain.Pose, dir domain.Direction, from, to domain.Pose) domain.Segment {
	return domain.Segment{
		PathID:    domain.PosePathID(domain.PoseCenter, variant),
		Direction: dir,
		From:      domain.State{Expression: domain.ExprNeutral, Pose: from},
		To:        domain.State{Expression: domain.ExprNeutral, Pose: to},
	}
}

// IdleProxy returns the expression whose idle art stands in for expr.
// Expressions directly reachable from neutral have their own
// "neutral_to_<expr>" sequence to hold a frame from; an expression
// reachable only through an intermediate borrows that intermediate's
// idle frame instead. The first adjacent edge in table order decides,
// keeping the result deterministic.
func (p *Planner) IdleProxy(expr domain.Expression) domain.Expression {
	if expr == domain.ExprNeutral {
		return expr
	}
	var proxy domain.Expression
	for _, e := range p.edges {
		var other domain.Expression
		switch expr {
		case e.Start:
			other = e.End
		case e.End:
			other = e.Start
		default:
			continue
		}
		if other == domain.ExprNeutral {
			return expr
		}
		if proxy == "" {
			proxy = other
		}
	}
	if proxy == "" {
		return expr
	}
	return proxy
}

// PathIDs lists every sequence path id implied by the edge table, expression
// edges first, then the pose sequences. Store tooling uses this to verify or
// seed an asset inventory.
func (p *Planner) PathIDs() []string {
	var ids []string
	for _, e := range p.edges {
		if e.Scope == ScopeAllPoses {
			for _, pose := range domain.Poses() {
				ids = append(ids, domain.ExpressionPathID(e.Start, e.End, pose))
			}
			continue
		}
		ids = append(ids, domain.ExpressionPathID(e.Start, e.End, domain.PoseCenter))
	}
	for _, pose := range domain.Poses() {
		if pose.IsCenter() {
			continue
		}
		ids = append(ids, domain.PosePathID(domain.PoseCenter, pose))
	}
	return ids
}
