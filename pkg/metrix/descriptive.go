package metrix

// Descriptive is implemented by every named tree node (processors,
// mounts, cockpits, panels, instruments, the driver). Title and
// Description are only surfaced in the snapshot when it is requested in
// descriptive mode.
type Descriptive interface {
	Title() string
	Description() string
}

// Descriptives is the common embeddable implementation of Descriptive.
type Descriptives struct {
	title       string
	description string
}

func (d *Descriptives) Title() string       { return d.title }
func (d *Descriptives) Description() string { return d.description }

func (d *Descriptives) SetTitle(title string)             { d.title = title }
func (d *Descriptives) SetDescription(description string) { d.description = description }

// PutDescriptiveFields appends title/description fields under name+suffix
// to into when descriptive is true and a value has been set. Grounded on
// the teacher's util.put_default_descriptives-style helper: descriptive
// fields are opt-in noise, never part of the default snapshot shape.
func PutDescriptiveFields(d Descriptive, name string, into *Snapshot, descriptive bool) {
	if !descriptive {
		return
	}
	if d.Title() != "" {
		into.Push(name+"_title", TextItem(d.Title()))
	}
	if d.Description() != "" {
		into.Push(name+"_description", TextItem(d.Description()))
	}
}
