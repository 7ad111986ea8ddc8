package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/philipparndt/polymesh/internal/config"
	"github.com/philipparndt/polymesh/pkg/analysis"
	"github.com/philipparndt/polymesh/pkg/importer"
	"github.com/philipparndt/polymesh/pkg/polydb"
	"github.com/philipparndt/polymesh/pkg/scene"
	"github.com/philipparndt/polymesh/pkg/viewer"
	"github.com/philipparndt/polymesh/pkg/watcher"
)

type App struct {
	window   fyne.Window
	cfg      *config.Config
	logger   *slog.Logger
	db       *polydb.DB
	scene    *scene.Scene
	importer *importer.Importer

	polyhedra []polydb.Summary
	list      *widget.List
	renderer  *viewer.MeshRenderer

	measurementInfo *MeasurementInfo
	stopWatch       func()
}

type MeasurementInfo struct {
	point1Label    *widget.Label
	point2Label    *widget.Label
	distanceXLabel *widget.Label
	distanceYLabel *widget.Label
	distanceZLabel *widget.Label
	totalDistLabel *widget.Label
	meshInfoLabel  *widget.Label
	sceneLabel     *widget.Label
}

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(config.DefaultFile)
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	a := app.New()
	w := a.NewWindow("polymesh - Polyhedron Viewer")

	appInstance := &App{
		window: w,
		cfg:    cfg,
		logger: logger,
	}
	defer appInstance.close()

	// Database given as argument overrides the config
	path := cfg.Database
	if len(os.Args) > 1 {
		path = os.Args[1]
	}
	if _, err := os.Stat(path); err == nil {
		appInstance.openDatabase(path)
	} else {
		appInstance.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(1200, 800))
	w.ShowAndRun()
}

func (a *App) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to polymesh")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Click 'Open Database' to load a polyhedron database")

	openButton := widget.NewButton("Open Database", func() {
		a.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	a.window.SetContent(content)
}

func (a *App) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, a.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		a.openDatabase(reader.URI().Path())
	}, a.window)
}

func (a *App) close() {
	if a.stopWatch != nil {
		a.stopWatch()
		a.stopWatch = nil
	}
	if a.db != nil {
		a.db.Close()
	}
}

func (a *App) openDatabase(path string) {
	db, err := polydb.Open(path)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to open database: %w", err), a.window)
		return
	}
	polyhedra, err := db.List(context.Background())
	if err != nil {
		db.Close()
		dialog.ShowError(fmt.Errorf("failed to read database: %w", err), a.window)
		return
	}

	a.close()
	a.db = db
	a.polyhedra = polyhedra
	a.scene = scene.New()
	a.scene.NewCollection(a.cfg.Collection)
	a.importer = importer.New(db, importer.Target{Scene: a.scene, Collection: a.cfg.Collection}, a.logger)

	a.setupMainUI()
	a.watchDatabase(path)
}

// watchDatabase refreshes the polyhedron list when another process writes
// to the database
func (a *App) watchDatabase(path string) {
	w, err := watcher.New(path, a.cfg.Watch.Debounce(), a.logger)
	if err != nil {
		a.logger.Warn("database changes will not be picked up", "error", err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	a.stopWatch = func() {
		cancel()
		<-done
		w.Close()
	}

	db := a.db
	go func() {
		defer close(done)
		w.Run(ctx, func() {
			a.reloadPolyhedra(ctx, db)
		})
	}()
}

// reloadPolyhedra runs on the watcher goroutine. The caller keeps db open
// until the watcher has stopped.
func (a *App) reloadPolyhedra(ctx context.Context, db *polydb.DB) {
	if ctx.Err() != nil {
		return
	}
	polyhedra, err := db.List(ctx)
	if err != nil {
		a.logger.Warn("failed to reload polyhedra", "error", err)
		return
	}
	fyne.Do(func() {
		if ctx.Err() != nil {
			return
		}
		a.polyhedra = polyhedra
		a.list.Refresh()
	})
}

func (a *App) setupMainUI() {
	a.measurementInfo = &MeasurementInfo{
		point1Label:    widget.NewLabel("Point 1: Not selected"),
		point2Label:    widget.NewLabel("Point 2: Not selected"),
		distanceXLabel: widget.NewLabel("Distance X: -"),
		distanceYLabel: widget.NewLabel("Distance Y: -"),
		distanceZLabel: widget.NewLabel("Distance Z: -"),
		totalDistLabel: widget.NewLabel("Total Distance: -"),
		meshInfoLabel:  widget.NewLabel("Select a polyhedron"),
		sceneLabel:     widget.NewLabel(""),
	}
	a.measurementInfo.totalDistLabel.TextStyle = fyne.TextStyle{Bold: true}

	a.renderer = viewer.NewMeshRenderer(nil)
	a.renderer.SetOnVertexSelect(func(int) {
		a.updateMeasurements()
	})

	a.list = widget.NewList(
		func() int { return len(a.polyhedra) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(i widget.ListItemID, o fyne.CanvasObject) {
			p := a.polyhedra[i]
			o.(*widget.Label).SetText(fmt.Sprintf("%d  %s", p.ID, p.Name))
		},
	)
	a.list.OnSelected = func(i widget.ListItemID) {
		a.importPolyhedron(a.polyhedra[i].ID)
	}

	openButton := widget.NewButton("Open Database", func() {
		a.showFileDialog()
	})

	clearButton := widget.NewButton("Clear Selection", func() {
		a.renderer.ClearSelection()
		a.updateMeasurements()
	})

	filledModeCheck := widget.NewCheck("Show Filled", func(checked bool) {
		a.renderer.SetFilledMode(checked)
	})
	filledModeCheck.SetChecked(false)

	instructions := widget.NewLabel(
		"Instructions:\n" +
			"• Pick a polyhedron from the list\n" +
			"• Click on vertices to select points\n" +
			"• Drag to rotate the view\n" +
			"• Scroll to zoom in/out\n" +
			"• Select 2 points to measure distance",
	)
	instructions.Wrapping = fyne.TextWrapWord

	infoPanel := container.NewVBox(
		widget.NewLabel("Polyhedron Information:"),
		widget.NewSeparator(),
		a.measurementInfo.meshInfoLabel,
		a.measurementInfo.sceneLabel,
		widget.NewSeparator(),
		widget.NewLabel("Measurements:"),
		widget.NewSeparator(),
		a.measurementInfo.point1Label,
		a.measurementInfo.point2Label,
		widget.NewSeparator(),
		a.measurementInfo.distanceXLabel,
		a.measurementInfo.distanceYLabel,
		a.measurementInfo.distanceZLabel,
		a.measurementInfo.totalDistLabel,
		widget.NewSeparator(),
		widget.NewLabel("Display Options:"),
		filledModeCheck,
		widget.NewSeparator(),
		instructions,
		widget.NewSeparator(),
		openButton,
		clearButton,
	)

	infoScroll := container.NewVScroll(infoPanel)
	infoScroll.SetMinSize(fyne.NewSize(300, 0))

	listPanel := container.NewBorder(widget.NewLabel("Polyhedra:"), nil, nil, nil, a.list)

	content := container.NewBorder(
		nil,        // top
		nil,        // bottom
		listPanel,  // left
		infoScroll, // right
		a.renderer, // center
	)

	a.window.SetContent(content)
}

// importPolyhedron links the polyhedron into the scene and shows it
func (a *App) importPolyhedron(id int64) {
	obj, err := a.importer.Import(context.Background(), id)
	if err != nil {
		dialog.ShowError(fmt.Errorf("failed to import polyhedron %d: %w", id, err), a.window)
		return
	}

	m := obj.Mesh.Geometry()
	a.renderer.SetMesh(m)
	a.updateMeasurements()

	result := analysis.AnalyzeMesh(m)
	a.measurementInfo.meshInfoLabel.SetText(fmt.Sprintf(
		"Polyhedron: %s\nVertices: %d\nEdges: %d\nFaces: %d\nEuler: %d\nSurface Area: %.4f\nVolume: %.4f\nEdge Length: %.4f - %.4f\n\nDimensions:\n  X: %.4f\n  Y: %.4f\n  Z: %.4f",
		m.Name,
		result.VertexCount,
		result.EdgeCount,
		result.FaceCount,
		result.Euler,
		result.SurfaceArea,
		result.Volume,
		result.MinEdgeLength,
		result.MaxEdgeLength,
		result.Dimensions.X,
		result.Dimensions.Y,
		result.Dimensions.Z,
	))
	a.measurementInfo.sceneLabel.SetText(fmt.Sprintf("Active object: %s (%d in scene)",
		a.scene.ViewLayer().Active().Name, len(a.scene.Objects())))
}

func (a *App) updateMeasurements() {
	points := a.renderer.SelectedPoints()

	if len(points) == 0 {
		a.measurementInfo.point1Label.SetText("Point 1: Not selected")
		a.measurementInfo.point2Label.SetText("Point 2: Not selected")
		a.resetDistances()
		return
	}

	p1 := points[0]
	a.measurementInfo.point1Label.SetText(fmt.Sprintf("Point 1: (%.3f, %.3f, %.3f)", p1.X, p1.Y, p1.Z))

	if len(points) < 2 {
		a.measurementInfo.point2Label.SetText("Point 2: Click to select")
		a.resetDistances()
		return
	}

	p2 := points[1]
	a.measurementInfo.point2Label.SetText(fmt.Sprintf("Point 2: (%.3f, %.3f, %.3f)", p2.X, p2.Y, p2.Z))

	a.measurementInfo.distanceXLabel.SetText(fmt.Sprintf("Distance X: %.6f units", math.Abs(p2.X-p1.X)))
	a.measurementInfo.distanceYLabel.SetText(fmt.Sprintf("Distance Y: %.6f units", math.Abs(p2.Y-p1.Y)))
	a.measurementInfo.distanceZLabel.SetText(fmt.Sprintf("Distance Z: %.6f units", math.Abs(p2.Z-p1.Z)))
	a.measurementInfo.totalDistLabel.SetText(fmt.Sprintf("Total Distance: %.6f units", p1.Distance(p2)))
}

func (a *App) resetDistances() {
	a.measurementInfo.distanceXLabel.SetText("Distance X: -")
	a.measurementInfo.distanceYLabel.SetText("Distance Y: -")
	a.measurementInfo.distanceZLabel.SetText("Distance Z: -")
	a.measurementInfo.totalDistLabel.SetText("Total Distance: -")
}
