package mef

// Component groups house events, basic events, parameters, gates, and
// CCF groups under one nested scope, optionally containing further
// components. A FaultTree is a top-level Component with an additional
// notion of top events.
type Component struct {
	RoleElement
	Gates       []*Gate
	BasicEvents []*BasicEvent
	HouseEvents []*HouseEvent
	Parameters  []*Parameter
	CcfGroups   []*CcfGroup
	Components  []*Component
}

// Local child-slice bookkeeping only; qualified-name collisions are
// caught by the model's arenas before these are ever called; see
// initializer's registration order.
func (c *Component) AddGate(g *Gate)             { c.Gates = append(c.Gates, g) }
func (c *Component) AddBasicEvent(b *BasicEvent) { c.BasicEvents = append(c.BasicEvents, b) }
func (c *Component) AddHouseEvent(h *HouseEvent) { c.HouseEvents = append(c.HouseEvents, h) }
func (c *Component) AddParameter(p *Parameter)   { c.Parameters = append(c.Parameters, p) }
func (c *Component) AddCcfGroup(g *CcfGroup)     { c.CcfGroups = append(c.CcfGroups, g) }
func (c *Component) AddComponent(sub *Component) { c.Components = append(c.Components, sub) }

// AllGates returns every gate owned transitively by this component and
// its nested components.
func (c *Component) AllGates() []*Gate {
	out := append([]*Gate{}, c.Gates...)
	for _, sub := range c.Components {
		out = append(out, sub.AllGates()...)
	}
	return out
}

// FaultTree is a top-level Component plus the top events discovered
// during setup: gates never referenced as another gate's argument
// anywhere within the tree.
type FaultTree struct {
	Component
	TopEvents []*Gate
}

// CollectTopEvents scans every gate transitively owned by this tree and
// records the ones no other gate in the tree references as an argument.
func (ft *FaultTree) CollectTopEvents() {
	gates := ft.AllGates()
	referenced := make(map[*Gate]bool, len(gates))
	for _, g := range gates {
		for _, succ := range g.Successors() {
			referenced[succ] = true
		}
	}
	ft.TopEvents = ft.TopEvents[:0]
	for _, g := range gates {
		if !referenced[g] {
			ft.TopEvents = append(ft.TopEvents, g)
		}
	}
}
