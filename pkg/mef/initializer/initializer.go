// Package initializer runs the two-pass build that turns a set of MEF
// input files into a validated model.Model: pass one registers every
// named element's shell so forward references resolve regardless of
// declaration order, pass two binds each shell's body (formula,
// expression, branch target) against the now-complete name space, and a
// final validation pass checks everything that only makes sense once the
// whole graph exists.
package initializer

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/openpsa-tools/mef-init/internal/audit"
	"github.com/openpsa-tools/mef-init/internal/config"
	"github.com/openpsa-tools/mef-init/internal/logx"
	"github.com/openpsa-tools/mef-init/internal/notify"
	"github.com/openpsa-tools/mef-init/internal/telemetry"
	"github.com/openpsa-tools/mef-init/pkg/mef"
	"github.com/openpsa-tools/mef-init/pkg/mef/build"
	"github.com/openpsa-tools/mef-init/pkg/mef/merr"
	"github.com/openpsa-tools/mef-init/pkg/mef/validate"
	"github.com/openpsa-tools/mef-init/pkg/mef/xmlsrc"
)

// tbdKind selects which of a tbdEntry's pointer fields is populated. Only
// elements whose body can reference a name declared later in the input
// need a pass-two entry; named branches are bound as part of their owning
// event tree's single entry rather than getting one each.
type tbdKind int

const (
	tbdGate tbdKind = iota
	tbdBasicEvent
	tbdParameter
	tbdCcfGroup
	tbdSequence
	tbdEventTree
)

type tbdEntry struct {
	kind tbdKind
	node xmlsrc.Node

	gate       *mef.Gate
	basicEvent *mef.BasicEvent
	parameter  *mef.Parameter
	ccfGroup   *mef.CcfGroup
	sequence   *mef.Sequence
	eventTree  *mef.EventTree
}

// Result is what one run produces: the finished model plus the counts
// callers most often want without walking it themselves.
type Result struct {
	Model      *mef.Model
	GateCount  int
	TopEvents  int
	FaultTrees int
}

// Initializer turns MEF input files into a validated Model, wiring
// structured logging, metrics, notification, and audit around the build
// the way a long-running service would rather than a one-shot script.
type Initializer struct {
	Settings config.Settings
	Logger   logx.Logger
	Metrics  *telemetry.Registry
	Notifier *notify.Publisher
	Audit    audit.Sink

	model   *mef.Model
	builder *build.Builder
	schema  xmlsrc.SchemaValidator
	tbd     []tbdEntry
}

// New returns an Initializer with nil-safe defaults for every optional
// collaborator: a no-op logger, no metrics, no notification, and an
// audit sink that discards everything.
func New(settings config.Settings) *Initializer {
	return &Initializer{
		Settings: settings,
		Logger:   logx.NewNopLogger(),
		Audit:    audit.NopSink{},
		schema:   xmlsrc.StructuralValidator{},
	}
}

// Run parses, builds, and validates a model from files, recording an
// audit entry for the attempt regardless of outcome.
func (init *Initializer) Run(ctx context.Context, files []string) (*Result, error) {
	start := time.Now()
	runID := uuid.New()
	log := init.Logger.With(logx.String("run_id", runID.String()))

	rec := audit.Record{RunID: runID.String(), Files: files, StartedAt: start}
	defer func() {
		rec.Duration = time.Since(start)
		if err := init.Audit.Record(ctx, rec); err != nil {
			log.Warn("failed to write audit record", logx.Error(err))
		}
	}()

	result, err := init.run(log, files, runID)
	if err != nil {
		rec.Succeeded = false
		rec.Error = err.Error()
		return nil, err
	}
	rec.Succeeded = true
	rec.GateCount = result.GateCount
	rec.TopEvents = result.TopEvents
	rec.FaultTrees = result.FaultTrees
	return result, nil
}

func (init *Initializer) run(log logx.Logger, files []string, runID uuid.UUID) (*Result, error) {
	loadTimer := logx.StartTimer(log, "load input files", logx.Stage("load"), logx.Count(len(files)))
	if err := xmlsrc.CheckFiles(files); err != nil {
		loadTimer.EndError(err)
		return nil, err
	}

	registry := xmlsrc.NewRegistry()
	init.model = mef.NewModel("Unnamed")
	init.model.RunID = runID
	init.model.MissionTime.Expression = &mef.ConstantExpression{Value: init.Settings.MissionTimeHours}
	init.builder = build.NewBuilder(init.model)

	for _, path := range files {
		doc, err := registry.Load(path)
		if err != nil {
			loadTimer.EndError(err)
			return nil, err
		}
		if err := init.schema.Validate(doc); err != nil {
			loadTimer.EndError(err)
			return nil, merr.WrapFile(path, err)
		}
		if init.Metrics != nil {
			init.Metrics.FilesLoadedTotal.Inc()
		}
	}
	loadTimer.End()

	pass1 := logx.StartTimer(log, "register element shells", logx.Stage("pass1"))
	for _, doc := range registry.Documents() {
		if err := init.registerFile(doc.Root); err != nil {
			pass1.EndError(err)
			return nil, merr.WrapFile(doc.Path, err)
		}
	}
	pass1.End()

	pass2 := logx.StartTimer(log, "bind element bodies", logx.Stage("pass2"), logx.Count(len(init.tbd)))
	for _, entry := range init.tbd {
		if err := init.defineEntry(entry); err != nil {
			pass2.EndError(err)
			return nil, merr.WrapFile(entry.node.Doc().Path, err)
		}
	}
	pass2.End()

	validateTimer := logx.StartTimer(log, "validate model", logx.Stage("validate"))
	if err := validate.Validate(init.model, init.Settings.ProbabilityAnalysis, init.builder.Expressions); err != nil {
		validateTimer.EndError(err)
		if init.Metrics != nil {
			init.Metrics.ValidationFailures.WithLabelValues("model").Inc()
		}
		return nil, err
	}
	validateTimer.End()

	init.setupForAnalysis()

	result := &Result{
		Model:      init.model,
		GateCount:  init.model.Gates.Len(),
		TopEvents:  countTopEvents(init.model),
		FaultTrees: init.model.FaultTrees.Len(),
	}
	if init.Metrics != nil {
		init.Metrics.TopEventsTotal.Set(float64(result.TopEvents))
	}

	if err := init.Notifier.Publish(notify.ModelReady{
		RunID:      runID.String(),
		ModelName:  init.model.Name,
		GateCount:  result.GateCount,
		TopEvents:  result.TopEvents,
		FaultTrees: result.FaultTrees,
	}); err != nil {
		log.Warn("failed to publish model-ready notification", logx.Error(err))
	}

	log.Info("initialization complete",
		logx.Count(result.GateCount), logx.Int("top_events", result.TopEvents), logx.Int("fault_trees", result.FaultTrees))
	return result, nil
}

// registerFile registers every top-level construct in one document's root,
// in the order the original tool processes them: event trees before fault
// trees before model data. CCF groups are registered inside their fault
// tree or component, and each group creates its own member basic events.
func (init *Initializer) registerFile(root xmlsrc.Node) error {
	for _, n := range root.ChildrenNamed("define-event-tree") {
		if err := init.defineEventTree(n); err != nil {
			return err
		}
	}
	for _, n := range root.ChildrenNamed("define-fault-tree") {
		if err := init.defineFaultTree(n); err != nil {
			return err
		}
	}
	for _, n := range root.ChildrenNamed("define-CCF-group") {
		if err := init.defineCcfGroup(n, "", mef.RolePublic, nil); err != nil {
			return err
		}
	}
	for _, n := range root.ChildrenNamed("model-data") {
		if err := init.processModelData(n); err != nil {
			return err
		}
	}
	return nil
}

func (init *Initializer) defineEntry(e tbdEntry) error {
	switch e.kind {
	case tbdGate:
		return init.defineGateBody(e.node, e.gate)
	case tbdBasicEvent:
		return init.defineBasicEventBody(e.node, e.basicEvent)
	case tbdParameter:
		return init.defineParameterBody(e.node, e.parameter)
	case tbdCcfGroup:
		return init.defineCcfGroupBody(e.node, e.ccfGroup)
	case tbdSequence:
		return init.defineSequenceBody(e.node, e.sequence)
	case tbdEventTree:
		return init.defineEventTreeBody(e.node, e.eventTree)
	default:
		return nil
	}
}

func (init *Initializer) setupForAnalysis() {
	for _, ft := range init.model.FaultTrees.All() {
		ft.CollectTopEvents()
	}
	for _, g := range init.model.CcfGroups.All() {
		g.ApplyModel()
	}
}

func (init *Initializer) countElement(kind string) {
	if init.Metrics != nil {
		init.Metrics.ElementsLoadedTotal.WithLabelValues(kind).Inc()
	}
}

func countTopEvents(model *mef.Model) int {
	n := 0
	for _, ft := range model.FaultTrees.All() {
		n += len(ft.TopEvents)
	}
	return n
}

// nonAttributeChildren drops the <label> and <attributes> children every
// construct may carry, leaving only the children that describe the
// element's actual body.
func nonAttributeChildren(node xmlsrc.Node) []xmlsrc.Node {
	var out []xmlsrc.Node
	for _, c := range node.Children() {
		if c.Name() == "label" || c.Name() == "attributes" {
			continue
		}
		out = append(out, c)
	}
	return out
}
