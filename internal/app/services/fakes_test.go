package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/slgoiko/unirhub/internal/app/models"
	"github.com/slgoiko/unirhub/internal/app/repositories"
	"github.com/slgoiko/unirhub/internal/pkg/apperrors"
	"github.com/slgoiko/unirhub/internal/pkg/googleapi"
)

// In-memory stores standing in for the postgres repositories.

type fakeSubjectStore struct {
	subjects  map[int64]*models.Subject
	nextID    int64
	createErr error
}

func newFakeSubjectStore() *fakeSubjectStore {
	return &fakeSubjectStore{subjects: make(map[int64]*models.Subject)}
}

func (f *fakeSubjectStore) add(name string) *models.Subject {
	f.nextID++
	subject := &models.Subject{ID: f.nextID, Name: name}
	f.subjects[subject.ID] = subject
	return subject
}

func (f *fakeSubjectStore) Create(_ context.Context, subject *models.Subject) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, existing := range f.subjects {
		if existing.Name == subject.Name {
			return apperrors.ErrSubjectAlreadyExists
		}
	}
	f.nextID++
	subject.ID = f.nextID
	f.subjects[subject.ID] = subject
	return nil
}

func (f *fakeSubjectStore) GetByID(_ context.Context, id int64) (*models.Subject, error) {
	subject, ok := f.subjects[id]
	if !ok {
		return nil, apperrors.ErrSubjectNotFound
	}
	return subject, nil
}

func (f *fakeSubjectStore) GetAll(_ context.Context) ([]*models.Subject, error) {
	all := make([]*models.Subject, 0, len(f.subjects))
	for _, subject := range f.subjects {
		all = append(all, subject)
	}
	return all, nil
}

func (f *fakeSubjectStore) UpdateDescription(_ context.Context, id int64, description string) error {
	subject, ok := f.subjects[id]
	if !ok {
		return apperrors.ErrSubjectNotFound
	}
	subject.Description = description
	return nil
}

func (f *fakeSubjectStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.subjects[id]; !ok {
		return apperrors.ErrSubjectNotFound
	}
	delete(f.subjects, id)
	return nil
}

type fakeNoteStore struct {
	notes  map[int64]*models.Note
	nextID int64
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{notes: make(map[int64]*models.Note)}
}

func (f *fakeNoteStore) Create(_ context.Context, note *models.Note) error {
	f.nextID++
	note.ID = f.nextID
	f.notes[note.ID] = note
	return nil
}

func (f *fakeNoteStore) GetByID(_ context.Context, id int64) (*models.Note, error) {
	note, ok := f.notes[id]
	if !ok {
		return nil, apperrors.ErrNoteNotFound
	}
	return note, nil
}

func (f *fakeNoteStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Note, error) {
	var out []*models.Note
	for _, note := range f.notes {
		if note.SubjectID == subjectID {
			out = append(out, note)
		}
	}
	return out, nil
}

func (f *fakeNoteStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.notes[id]; !ok {
		return apperrors.ErrNoteNotFound
	}
	delete(f.notes, id)
	return nil
}

type fakeResourceStore struct {
	resources map[int64]*models.Resource
	nextID    int64
	createErr error
}

func newFakeResourceStore() *fakeResourceStore {
	return &fakeResourceStore{resources: make(map[int64]*models.Resource)}
}

func (f *fakeResourceStore) Create(_ context.Context, resource *models.Resource) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	resource.ID = f.nextID
	f.resources[resource.ID] = resource
	return nil
}

func (f *fakeResourceStore) GetByID(_ context.Context, id int64) (*models.Resource, error) {
	resource, ok := f.resources[id]
	if !ok {
		return nil, apperrors.ErrResourceRowNotFound
	}
	return resource, nil
}

func (f *fakeResourceStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Resource, error) {
	var out []*models.Resource
	for _, resource := range f.resources {
		if resource.SubjectID == subjectID {
			out = append(out, resource)
		}
	}
	return out, nil
}

func (f *fakeResourceStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.resources[id]; !ok {
		return apperrors.ErrResourceRowNotFound
	}
	delete(f.resources, id)
	return nil
}

type fakeActivityStore struct {
	activities map[int64]*models.Activity
	files      map[int64][]*models.ActivityFile
	nextID     int64
}

func newFakeActivityStore() *fakeActivityStore {
	return &fakeActivityStore{
		activities: make(map[int64]*models.Activity),
		files:      make(map[int64][]*models.ActivityFile),
	}
}

func (f *fakeActivityStore) Create(_ context.Context, activity *models.Activity) error {
	f.nextID++
	activity.ID = f.nextID
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityStore) GetByID(_ context.Context, id int64) (*models.Activity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, apperrors.ErrActivityNotFound
	}
	return activity, nil
}

func (f *fakeActivityStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Activity, error) {
	var out []*models.Activity
	for _, activity := range f.activities {
		if activity.SubjectID == subjectID {
			out = append(out, activity)
		}
	}
	return out, nil
}

func (f *fakeActivityStore) ToggleCompleted(_ context.Context, id int64) (bool, error) {
	activity, ok := f.activities[id]
	if !ok {
		return false, apperrors.ErrActivityNotFound
	}
	activity.IsCompleted = !activity.IsCompleted
	return activity.IsCompleted, nil
}

func (f *fakeActivityStore) UpdateGradeComments(_ context.Context, id int64, grade *string, comments string) error {
	activity, ok := f.activities[id]
	if !ok {
		return apperrors.ErrActivityNotFound
	}
	activity.Grade = grade
	activity.Comments = comments
	return nil
}

func (f *fakeActivityStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.activities[id]; !ok {
		return apperrors.ErrActivityNotFound
	}
	delete(f.activities, id)
	delete(f.files, id)
	return nil
}

func (f *fakeActivityStore) CreateFile(_ context.Context, file *models.ActivityFile) error {
	f.nextID++
	file.ID = f.nextID
	f.files[file.ActivityID] = append(f.files[file.ActivityID], file)
	return nil
}

func (f *fakeActivityStore) GetFiles(_ context.Context, activityID int64) ([]*models.ActivityFile, error) {
	return f.files[activityID], nil
}

type fakeEventStore struct {
	events      map[int64]*models.Event
	subjectName map[int64]string
	nextID      int64
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{
		events:      make(map[int64]*models.Event),
		subjectName: make(map[int64]string),
	}
}

func (f *fakeEventStore) Create(_ context.Context, event *models.Event) error {
	f.nextID++
	event.ID = f.nextID
	f.events[event.ID] = event
	return nil
}

func (f *fakeEventStore) GetByID(_ context.Context, id int64) (*models.Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, apperrors.ErrEventNotFound
	}
	return event, nil
}

func (f *fakeEventStore) GetBySubjectID(_ context.Context, subjectID int64) ([]*models.Event, error) {
	var out []*models.Event
	for _, event := range f.events {
		if event.SubjectID != nil && *event.SubjectID == subjectID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (f *fakeEventStore) GetAllWithSubject(_ context.Context) ([]*repositories.EventWithSubject, error) {
	var out []*repositories.EventWithSubject
	for _, event := range f.events {
		row := &repositories.EventWithSubject{Event: *event}
		if event.SubjectID != nil {
			if name, ok := f.subjectName[*event.SubjectID]; ok {
				row.SubjectName = &name
			}
		}
		out = append(out, row)
	}
	return out, nil
}

func (f *fakeEventStore) SetGoogleEventID(_ context.Context, id int64, googleEventID string) error {
	event, ok := f.events[id]
	if !ok {
		return apperrors.ErrEventNotFound
	}
	event.GoogleEventID = &googleEventID
	return nil
}

func (f *fakeEventStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.events[id]; !ok {
		return apperrors.ErrEventNotFound
	}
	delete(f.events, id)
	return nil
}

type fakeSessionStore struct {
	sessions  map[string]*models.Session
	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[string]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.sessions[session.ID] = session
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id string) (*models.Session, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return session, nil
}

func (f *fakeSessionStore) Delete(_ context.Context, id string) error {
	if _, ok := f.sessions[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(f.sessions, id)
	return nil
}

// Fakes for the Google side.

type fakeUpload struct {
	title    string
	folderID string
}

type fakeDrive struct {
	folders     []string
	uploads     []fakeUpload
	failUploads map[string]bool
	deleted     []string
	deleteErr   error
	fileData    []byte
	downloadErr error
}

func newFakeDrive() *fakeDrive {
	return &fakeDrive{failUploads: make(map[string]bool)}
}

func (f *fakeDrive) EnsureFolder(_ context.Context, name, parentID string) (string, error) {
	f.folders = append(f.folders, name)
	return "folder-" + name, nil
}

func (f *fakeDrive) Upload(_ context.Context, path, title, folderID string) (string, error) {
	if f.failUploads[title] {
		return "", errors.New("upload failed")
	}
	f.uploads = append(f.uploads, fakeUpload{title: title, folderID: folderID})
	return fmt.Sprintf("file-%d", len(f.uploads)), nil
}

func (f *fakeDrive) Download(_ context.Context, fileID string) ([]byte, error) {
	if f.downloadErr != nil {
		return nil, f.downloadErr
	}
	return f.fileData, nil
}

func (f *fakeDrive) Delete(_ context.Context, fileID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, fileID)
	return nil
}

type fakeCalendar struct {
	inserted  []googleapi.EventInput
	insertErr error
}

func (f *fakeCalendar) InsertEvent(_ context.Context, input googleapi.EventInput) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	f.inserted = append(f.inserted, input)
	return fmt.Sprintf("gcal-%d", len(f.inserted)), nil
}

type fakeProvider struct {
	drive       *fakeDrive
	calendar    *fakeCalendar
	driveErr    error
	calendarErr error
}

func (f *fakeProvider) Drive(_ context.Context, _ *oauth2.Token) (googleapi.Drive, error) {
	if f.driveErr != nil {
		return nil, f.driveErr
	}
	return f.drive, nil
}

func (f *fakeProvider) Calendar(_ context.Context, _ *oauth2.Token) (googleapi.Calendar, error) {
	if f.calendarErr != nil {
		return nil, f.calendarErr
	}
	return f.calendar, nil
}

// fakeIdentityFlow scripts the OAuth exchange for auth service tests.
type fakeIdentityFlow struct {
	authURL     string
	stateErr    error
	exchangeErr error
	emailErr    error
	email       string
}

func (f *fakeIdentityFlow) AuthCodeURL() (string, error) {
	return f.authURL, nil
}

func (f *fakeIdentityFlow) VerifyState(state string) error {
	return f.stateErr
}

func (f *fakeIdentityFlow) Exchange(_ context.Context, code string) (*oauth2.Token, error) {
	if f.exchangeErr != nil {
		return nil, f.exchangeErr
	}
	return &oauth2.Token{AccessToken: "access-token"}, nil
}

func (f *fakeIdentityFlow) Email(_ context.Context, _ *oauth2.Token) (string, error) {
	if f.emailErr != nil {
		return "", f.emailErr
	}
	return f.email, nil
}
