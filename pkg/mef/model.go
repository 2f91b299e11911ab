package mef

import (
	"github.com/google/uuid"

	"github.com/openpsa-tools/mef-init/pkg/mef/symtab"
)

// Model is the finished analysis-ready object graph: every element the
// input files declared, indexed for the lookups pass two and validation
// need. It owns one arena per element kind plus a combined Events index,
// since basic events, house events, and gates share one name space.
type Model struct {
	Name  string
	RunID uuid.UUID

	Gates       *symtab.Table[*Gate]
	BasicEvents *symtab.Table[*BasicEvent]
	HouseEvents *symtab.Table[*HouseEvent]
	Events      *symtab.Table[Event]
	Parameters  *symtab.Table[*Parameter]
	CcfGroups   *symtab.Table[*CcfGroup]
	FaultTrees  *symtab.Table[*FaultTree]
	EventTrees  *symtab.Table[*EventTree]
	Sequences   *symtab.Table[*Sequence]

	MissionTime *Parameter

	TrueEvent  *HouseEvent
	FalseEvent *HouseEvent
	One        *ConstantExpression
	Zero       *ConstantExpression
	Pi         *ConstantExpression
}

// NewModel constructs an empty model with its canonical singletons
// already in place: the boolean house events, the boolean and pi
// expression constants, and a mission-time parameter every model owns
// regardless of whether any file references it.
func NewModel(name string) *Model {
	m := &Model{
		Name:        name,
		RunID:       uuid.New(),
		Gates:       symtab.New[*Gate]("gate"),
		BasicEvents: symtab.New[*BasicEvent]("basic event"),
		HouseEvents: symtab.New[*HouseEvent]("house event"),
		Events:      symtab.New[Event]("event"),
		Parameters:  symtab.New[*Parameter]("parameter"),
		CcfGroups:   symtab.New[*CcfGroup]("CCF group"),
		FaultTrees:  symtab.New[*FaultTree]("fault tree"),
		EventTrees:  symtab.New[*EventTree]("event tree"),
		Sequences:   symtab.New[*Sequence]("sequence"),
		One:         &ConstantExpression{Value: 1},
		Zero:        &ConstantExpression{Value: 0},
		Pi:          &ConstantExpression{Value: 3.14159265358979323846},
	}
	m.TrueEvent = &HouseEvent{RoleElement: RoleElement{Element: Element{Name: "true"}, Role: RolePublic}, State: true}
	m.FalseEvent = &HouseEvent{RoleElement: RoleElement{Element: Element{Name: "false"}, Role: RolePublic}, State: false}
	m.MissionTime = &Parameter{
		RoleElement: RoleElement{Element: Element{Name: "mission-time"}, Role: RolePublic},
		Unit:        UnitHours,
	}
	return m
}

// AddGate registers a gate under its qualified name, in both the
// gate-specific and the combined event arenas.
func (m *Model) AddGate(g *Gate) error {
	if err := m.Events.Insert(g.BasePath, g.Name, g.Role == RolePublic, Event(g)); err != nil {
		return err
	}
	return m.Gates.Insert(g.BasePath, g.Name, g.Role == RolePublic, g)
}

// AddBasicEvent registers a basic event under its qualified name.
func (m *Model) AddBasicEvent(b *BasicEvent) error {
	if err := m.Events.Insert(b.BasePath, b.Name, b.Role == RolePublic, Event(b)); err != nil {
		return err
	}
	return m.BasicEvents.Insert(b.BasePath, b.Name, b.Role == RolePublic, b)
}

// AddHouseEvent registers a house event under its qualified name.
func (m *Model) AddHouseEvent(h *HouseEvent) error {
	if err := m.Events.Insert(h.BasePath, h.Name, h.Role == RolePublic, Event(h)); err != nil {
		return err
	}
	return m.HouseEvents.Insert(h.BasePath, h.Name, h.Role == RolePublic, h)
}

// AddParameter registers a parameter under its qualified name.
func (m *Model) AddParameter(p *Parameter) error {
	return m.Parameters.Insert(p.BasePath, p.Name, p.Role == RolePublic, p)
}

// AddCcfGroup registers a CCF group under its qualified name.
func (m *Model) AddCcfGroup(g *CcfGroup) error {
	return m.CcfGroups.Insert(g.BasePath, g.Name, g.Role == RolePublic, g)
}

// AddFaultTree registers a top-level fault tree. Fault trees are always
// declared at model scope.
func (m *Model) AddFaultTree(ft *FaultTree) error {
	return m.FaultTrees.Insert("", ft.Name, true, ft)
}

// AddEventTree registers a top-level event tree.
func (m *Model) AddEventTree(et *EventTree) error {
	return m.EventTrees.Insert("", et.Name, true, et)
}

// AddSequence registers a sequence. Sequences are always public: branch
// targets resolve them by bare name regardless of which event tree
// declared them.
func (m *Model) AddSequence(s *Sequence) error {
	return m.Sequences.Insert(s.BasePath, s.Name, true, s)
}

// GetEvent resolves name against the combined events namespace.
func (m *Model) GetEvent(name, basePath string) (Event, bool) { return m.Events.Get(name, basePath) }

// GetGate resolves name specifically as a gate.
func (m *Model) GetGate(name, basePath string) (*Gate, bool) { return m.Gates.Get(name, basePath) }

// GetBasicEvent resolves name specifically as a basic event.
func (m *Model) GetBasicEvent(name, basePath string) (*BasicEvent, bool) {
	return m.BasicEvents.Get(name, basePath)
}

// GetHouseEvent resolves name specifically as a house event.
func (m *Model) GetHouseEvent(name, basePath string) (*HouseEvent, bool) {
	return m.HouseEvents.Get(name, basePath)
}

// GetParameter resolves name as a parameter.
func (m *Model) GetParameter(name, basePath string) (*Parameter, bool) {
	return m.Parameters.Get(name, basePath)
}
