package components

const componentTemplates = `
{{define "badge"}}<span class="{{.Class}}">{{.Label}}</span>{{end}}

{{define "button"}}<a class="{{.Class}}" href="{{.Href}}"{{if .External}} target="_blank" rel="noopener noreferrer"{{end}}>{{.Label}}</a>{{end}}

{{define "card"}}<a class="{{.Class}}" href="{{.Href}}">
  {{- if .Image}}
  {{- if .Deferred}}
  <div class="card__image card__image--deferred" id="{{.ImageID}}" data-src="{{.Image}}" data-alt="{{.Title}}" aria-hidden="true"></div>
  {{- else}}
  <img class="card__image" id="{{.ImageID}}" src="{{.Image}}" alt="{{.Title}}" loading="lazy">
  {{- end}}
  {{- end}}
  <div class="card__body">
    <h3 class="card__title">{{.Title}}</h3>
    {{- if .Description}}
    <p class="card__description">{{.Description}}</p>
    {{- end}}
    {{- if .Badges}}
    <div class="card__tags">{{range .Badges}}{{.}}{{end}}</div>
    {{- end}}
  </div>
</a>{{end}}

{{define "card-grid"}}<div class="card-grid" data-card-grid>
{{- range .Cards}}
{{.}}
{{- end}}
</div>{{end}}

{{define "radio-group"}}<div class="radio-group" role="radiogroup" aria-label="{{.Label}}" data-radio-group="{{.Name}}">
{{- range .Options}}
  <a class="{{.Class}}" role="radio" aria-checked="{{if .Checked}}true{{else}}false{{end}}" tabindex="{{if .Checked}}0{{else}}-1{{end}}" href="{{.Href}}" data-value="{{.Value}}">{{.Label}}</a>
{{- end}}
</div>{{end}}

{{define "version-select"}}<div class="version-select" data-version-select>
  <button type="button" class="version-select__trigger" aria-haspopup="listbox" aria-expanded="false">{{.CurrentLabel}}</button>
  <ul class="version-select__menu" role="listbox" tabindex="-1" hidden>
  {{- range .Links}}
    <li role="option" id="version-{{.ID}}" data-version="{{.ID}}" aria-selected="{{if .Current}}true{{else}}false{{end}}"{{if .Disabled}} aria-disabled="true"{{end}} class="version-select__option{{if .Current}} version-select__option--current{{end}}{{if .Disabled}} version-select__option--disabled{{end}}">
      {{- if and .Href (not .Disabled)}}<a href="{{.Href}}">{{.Label}}</a>{{else}}<span>{{.Label}}</span>{{end -}}
    </li>
  {{- end}}
  </ul>
</div>{{end}}

{{define "navbar"}}<nav class="{{.Class}}" aria-label="Main">
  <a class="navbar__brand" href="{{.BrandHref}}">{{.Brand}}</a>
  <ul class="navbar__items">
  {{- range .Items}}
    <li><a class="navbar__link{{if .Active}} navbar__link--active{{end}}" href="{{.Href}}"{{if .Active}} aria-current="page"{{end}}{{if .External}} target="_blank" rel="noopener noreferrer"{{end}}>{{.Label}}</a></li>
  {{- end}}
  </ul>
  <div class="navbar__right">
    {{- if .VersionSelect}}{{.VersionSelect}}{{end}}
    {{- if .GitHub}}{{.GitHub}}{{end}}
  </div>
</nav>{{end}}

{{define "github-button"}}<a class="github-button" href="https://github.com/{{.Repo}}" target="_blank" rel="noopener noreferrer" aria-label="Star {{.Repo}} on GitHub">
  <span class="github-button__label">GitHub</span>
  <span class="github-button__count" data-stars="{{.Stars}}">{{formatStar .Stars}}</span>
</a>{{end}}
`
