package site

// pageTemplate is the Go html/template for every generated page.
const pageTemplate = `<!DOCTYPE html>
<html lang="en" data-theme="{{.ColorMode}}">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Title}} | {{.SiteTitle}}</title>
  {{- if .Description}}
  <meta name="description" content="{{.Description}}">
  {{- end}}
  {{- if .Canonical}}
  <link rel="canonical" href="{{.Canonical}}">
  {{- end}}
  <link rel="stylesheet" href="/style.css">
</head>
<body data-version="{{.Version}}">
  {{.NavBar}}
  <div class="layout">
    {{- if .Sidebar}}
    <aside class="sidebar" id="sidebar">
      <input type="search" id="search-input" placeholder="Search..." autocomplete="off" aria-label="Search pages">
      <div class="sidebar-tree" id="sidebar-tree">
        {{.Sidebar}}
      </div>
    </aside>
    {{- end}}
    <main class="content">
      <article class="page-content">
        {{.Content}}
      </article>
    </main>
  </div>
  <script src="/script.js"></script>
</body>
</html>`

// catalogTemplate is the body of a catalog listing page.
const catalogTemplate = `{{if .Intro}}<section class="catalog-intro">{{.Intro}}</section>{{end}}
<section class="catalog" data-catalog data-endpoint="{{.Endpoint}}">
  {{.Filter}}
  {{.Grid}}
  <div class="catalog__empty"{{if not .Empty}} hidden{{end}}>
    <p>No examples match this tag.</p>
    {{- if .Reset}}
    {{.Reset}}
    {{- end}}
  </div>
</section>`

// cssContent is the full CSS for the site.
const cssContent = `:root {
  --bg: #ffffff;
  --bg-secondary: #f8f9fa;
  --text: #212529;
  --text-muted: #868e96;
  --border: #dee2e6;
  --accent: #5b5bd6;
  --accent-hover: #4949c4;
  --accent-light: #eeeefc;
  --code-bg: #f1f3f5;
  --sidebar-width: 260px;
  --content-max-width: 960px;
  --navbar-height: 60px;
  --radius: 8px;
  --shadow: 0 1px 3px rgba(0,0,0,0.08);
  --shadow-lg: 0 4px 12px rgba(0,0,0,0.1);
}

[data-theme="dark"] {
  --bg: #1a1b1e;
  --bg-secondary: #25262b;
  --text: #e9ecef;
  --text-muted: #909296;
  --border: #373a40;
  --accent: #8b8bf0;
  --accent-hover: #a5a5f5;
  --accent-light: #2c2c4a;
  --code-bg: #25262b;
}

* { box-sizing: border-box; }

body {
  margin: 0;
  font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif;
  background: var(--bg);
  color: var(--text);
  line-height: 1.6;
}

a { color: var(--accent); text-decoration: none; }
a:hover { color: var(--accent-hover); }

/* Navbar */
.navbar {
  position: sticky;
  top: 0;
  z-index: 10;
  display: flex;
  align-items: center;
  gap: 24px;
  height: var(--navbar-height);
  padding: 0 24px;
  background: var(--bg);
  border-bottom: 1px solid var(--border);
}
.navbar__brand { font-weight: 700; font-size: 1.1rem; color: var(--text); }
.navbar__items { display: flex; gap: 16px; margin: 0; padding: 0; list-style: none; }
.navbar__link { color: var(--text-muted); font-weight: 500; }
.navbar__link--active { color: var(--accent); }
.navbar__right { margin-left: auto; display: flex; align-items: center; gap: 12px; }

/* Version select */
.version-select { position: relative; }
.version-select__trigger {
  padding: 6px 12px;
  background: var(--bg-secondary);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--text);
  font: inherit;
  cursor: pointer;
}
.version-select__menu {
  position: absolute;
  right: 0;
  top: calc(100% + 4px);
  min-width: 140px;
  margin: 0;
  padding: 4px;
  list-style: none;
  background: var(--bg);
  border: 1px solid var(--border);
  border-radius: var(--radius);
  box-shadow: var(--shadow-lg);
}
.version-select__option > a,
.version-select__option > span { display: block; padding: 6px 10px; border-radius: 6px; color: var(--text); }
.version-select__option > a:hover { background: var(--accent-light); }
.version-select__option--current > a { font-weight: 600; color: var(--accent); }
.version-select__option--disabled > span { color: var(--text-muted); cursor: not-allowed; }

/* GitHub button */
.github-button {
  display: inline-flex;
  align-items: center;
  gap: 6px;
  padding: 6px 12px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--text);
}
.github-button__count { font-variant-numeric: tabular-nums; color: var(--text-muted); }

/* Layout */
.layout { display: flex; }
.sidebar {
  width: var(--sidebar-width);
  flex-shrink: 0;
  height: calc(100vh - var(--navbar-height));
  position: sticky;
  top: var(--navbar-height);
  overflow-y: auto;
  padding: 16px;
  border-right: 1px solid var(--border);
  background: var(--bg-secondary);
}
#search-input {
  width: 100%;
  padding: 8px 10px;
  margin-bottom: 12px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  background: var(--bg);
  color: var(--text);
}
.sidebar-tree ul { list-style: none; margin: 0; padding-left: 12px; }
.sidebar-tree > ul { padding-left: 0; }
.sidebar-tree li.dir > ul { display: none; }
.sidebar-tree li.dir.expanded > ul { display: block; }
.sidebar-tree .dir-toggle { display: block; padding: 4px 0; font-weight: 600; cursor: pointer; }
.sidebar-tree li.file a { display: block; padding: 3px 8px; border-radius: 6px; color: var(--text); }
.sidebar-tree li.file a.active { background: var(--accent-light); color: var(--accent); }
.sidebar-tree li.hidden { display: none; }

.content { flex: 1; min-width: 0; padding: 32px 48px; }
.page-content { max-width: var(--content-max-width); }
.page-content pre { padding: 16px; overflow-x: auto; background: var(--code-bg); border-radius: var(--radius); }
.page-content code { font-family: "SF Mono", Menlo, Consolas, monospace; font-size: 0.9em; }
.page-content table { border-collapse: collapse; }
.page-content th, .page-content td { padding: 6px 12px; border: 1px solid var(--border); }

/* Buttons and badges */
.button { display: inline-block; padding: 8px 16px; border-radius: var(--radius); font-weight: 500; }
.button--primary { background: var(--accent); color: #fff; }
.button--secondary { background: var(--bg-secondary); color: var(--text); }
.button--outline { border: 1px solid var(--accent); color: var(--accent); }
.button--sm { padding: 4px 10px; font-size: 0.875rem; }
.button--lg { padding: 12px 22px; font-size: 1.1rem; }
.badge {
  display: inline-block;
  padding: 2px 8px;
  border-radius: 999px;
  font-size: 0.75rem;
  font-weight: 500;
}
.badge--primary { background: var(--accent); color: #fff; }
.badge--secondary { background: var(--accent-light); color: var(--accent); }
.badge--outline { border: 1px solid var(--border); color: var(--text-muted); }

/* Radio card group */
.radio-group { display: flex; flex-wrap: wrap; gap: 8px; margin: 16px 0 24px; }
.radio-card {
  padding: 8px 14px;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  color: var(--text);
  background: var(--bg);
}
.radio-card:hover { border-color: var(--accent); }
.radio-card--checked { border-color: var(--accent); background: var(--accent-light); color: var(--accent); font-weight: 600; }

/* Cards */
.card-grid { display: grid; grid-template-columns: repeat(auto-fill, minmax(260px, 1fr)); gap: 16px; }
.card {
  display: flex;
  flex-direction: column;
  overflow: hidden;
  border: 1px solid var(--border);
  border-radius: var(--radius);
  background: var(--bg);
  color: var(--text);
  box-shadow: var(--shadow);
  transition: box-shadow 0.15s, transform 0.15s;
}
.card:hover { box-shadow: var(--shadow-lg); transform: translateY(-2px); }
.card__image { width: 100%; aspect-ratio: 16 / 9; object-fit: cover; background: var(--bg-secondary); }
.card__body { padding: 14px 16px; }
.card__title { margin: 0 0 6px; font-size: 1rem; }
.card__description { margin: 0 0 10px; color: var(--text-muted); font-size: 0.9rem; }
.card__tags { display: flex; flex-wrap: wrap; gap: 4px; }
.catalog__empty { color: var(--text-muted); }

@media (max-width: 768px) {
  .sidebar { display: none; }
  .content { padding: 20px; }
  .navbar__items { display: none; }
}
`

// jsContent drives the interactive parts of the generated pages.
const jsContent = `(function() {
  "use strict";

  var live = false;

  // ---- Sidebar directories ----
  var sidebarTree = document.getElementById("sidebar-tree");
  if (sidebarTree) {
    sidebarTree.addEventListener("click", function(e) {
      var toggle = e.target.closest(".dir-toggle");
      if (toggle) {
        toggle.parentElement.classList.toggle("expanded");
      }
    });
  }

  // ---- Sidebar search ----
  var searchInput = document.getElementById("search-input");
  var searchIndex = null;
  if (searchInput && sidebarTree) {
    fetch("/search-index.json").then(function(r) { return r.json(); }).then(function(data) {
      searchIndex = data;
    }).catch(function() {});

    searchInput.addEventListener("input", function() {
      var query = this.value.toLowerCase().trim();
      var items = sidebarTree.querySelectorAll("li.file");
      if (!query) {
        items.forEach(function(item) { item.classList.remove("hidden"); });
        return;
      }
      var matching = {};
      (searchIndex || []).forEach(function(entry) {
        var haystack = (entry.title + " " + entry.summary + " " + entry.content).toLowerCase();
        if (haystack.indexOf(query) !== -1) {
          matching[entry.path] = true;
        }
      });
      items.forEach(function(item) {
        var link = item.querySelector("a");
        var match = link.textContent.toLowerCase().indexOf(query) !== -1 || matching[link.getAttribute("href")];
        item.classList.toggle("hidden", !match);
        if (match) {
          var dir = item.parentElement.closest("li.dir");
          while (dir) {
            dir.classList.add("expanded");
            dir = dir.parentElement.closest("li.dir");
          }
        }
      });
    });
  }

  // ---- Version selector ----
  document.querySelectorAll("[data-version-select]").forEach(function(root) {
    var trigger = root.querySelector(".version-select__trigger");
    var menu = root.querySelector("[role=listbox]");
    var options = Array.prototype.slice.call(root.querySelectorAll("[role=option]"));

    function setOpen(open) {
      menu.hidden = !open;
      trigger.setAttribute("aria-expanded", open ? "true" : "false");
    }
    function isOpen() { return !menu.hidden; }
    function enabled(li) {
      return li.getAttribute("aria-disabled") !== "true";
    }
    function currentIndex() {
      for (var i = 0; i < options.length; i++) {
        if (options[i].getAttribute("aria-selected") === "true") return i;
      }
      return -1;
    }
    // step cycles from the current version to the next enabled one.
    function step(dir) {
      var n = options.length;
      var from = currentIndex();
      if (from < 0) from = dir > 0 ? -1 : 0;
      for (var k = 1; k <= n; k++) {
        var j = (((from + dir * k) % n) + n) % n;
        if (j === currentIndex()) return;
        if (enabled(options[j])) {
          var link = options[j].querySelector("a");
          if (link) {
            setOpen(false);
            window.location.assign(link.href);
          }
          return;
        }
      }
    }

    trigger.addEventListener("click", function() { setOpen(!isOpen()); });

    root.addEventListener("keydown", function(e) {
      switch (e.key) {
        case "ArrowDown":
        case "ArrowRight":
          e.preventDefault();
          step(1);
          break;
        case "ArrowUp":
        case "ArrowLeft":
          e.preventDefault();
          step(-1);
          break;
        case "Escape":
          if (isOpen()) {
            e.preventDefault();
            setOpen(false);
            trigger.focus();
          }
          break;
      }
    });

    menu.addEventListener("click", function(e) {
      var li = e.target.closest("[role=option]");
      if (!li) return;
      if (!enabled(li) || li.getAttribute("aria-selected") === "true") {
        e.preventDefault();
      }
      setOpen(false);
    });

    document.addEventListener("mousedown", function(e) {
      if (isOpen() && !root.contains(e.target)) setOpen(false);
    });
    document.addEventListener("focusin", function(e) {
      if (isOpen() && !root.contains(e.target)) setOpen(false);
    });
  });

  // ---- Catalog tag filter ----
  document.querySelectorAll("[data-catalog]").forEach(function(section) {
    var group = section.querySelector("[role=radiogroup]");
    if (!group) return;
    var radios = Array.prototype.slice.call(group.querySelectorAll("[role=radio]"));
    var endpoint = section.getAttribute("data-endpoint");
    var empty = section.querySelector(".catalog__empty");

    function check(radio) {
      radios.forEach(function(r) {
        var on = r === radio;
        r.setAttribute("aria-checked", on ? "true" : "false");
        r.setAttribute("tabindex", on ? "0" : "-1");
        r.classList.toggle("radio-card--checked", on);
      });
    }

    function select(radio) {
      var value = radio.getAttribute("data-value");
      return fetch(endpoint + "?tag=" + encodeURIComponent(value)).then(function(r) {
        if (!r.ok) throw new Error("status " + r.status);
        return r.text();
      }).then(function(html) {
        var grid = section.querySelector("[data-card-grid]");
        grid.outerHTML = html;
        check(radio);
        if (empty) empty.hidden = section.querySelectorAll("[data-card-grid] .card").length > 0;
        history.replaceState(null, "", radio.getAttribute("href"));
      });
    }

    group.addEventListener("click", function(e) {
      var radio = e.target.closest("[role=radio]");
      if (!radio || !live) return;
      e.preventDefault();
      select(radio).catch(function() { window.location.assign(radio.href); });
    });

    group.addEventListener("keydown", function(e) {
      var i = radios.indexOf(document.activeElement);
      if (i < 0) return;
      var next = -1;
      if (e.key === "ArrowRight" || e.key === "ArrowDown") next = (i + 1) % radios.length;
      if (e.key === "ArrowLeft" || e.key === "ArrowUp") next = (i - 1 + radios.length) % radios.length;
      if (e.key === " " || e.key === "Enter") next = i;
      if (next < 0) return;
      e.preventDefault();
      radios[next].focus();
      radios[next].click();
    });
  });

  // ---- Image hydration ----
  function hydrate(id, src, alt) {
    var el = document.getElementById(id);
    if (!el || el.tagName === "IMG") return;
    var img = document.createElement("img");
    img.className = "card__image";
    img.id = id;
    img.src = src;
    img.alt = alt || "";
    img.loading = "lazy";
    el.replaceWith(img);
  }
  function hydrateFromDOM() {
    document.querySelectorAll(".card__image--deferred[data-src]").forEach(function(el) {
      hydrate(el.id, el.getAttribute("data-src"), el.getAttribute("data-alt"));
    });
  }
  var pagePath = window.location.pathname.replace(/index\.html$/, "");
  fetch("/hydrate.json").then(function(r) { return r.json(); }).then(function(manifest) {
    (manifest[pagePath] || []).forEach(function(img) { hydrate(img.id, img.src, img.alt); });
    hydrateFromDOM();
  }).catch(hydrateFromDOM);

  // ---- Live reload (dev server only) ----
  fetch("/healthz").then(function(r) { return r.ok ? r.json() : null; }).then(function(status) {
    if (!status || !status.live_reload) return;
    live = true;
    var proto = window.location.protocol === "https:" ? "wss:" : "ws:";
    var ws = new WebSocket(proto + "//" + window.location.host + "/ws/reload");
    ws.onmessage = function(e) {
      if (e.data === "reload") window.location.reload();
    };
  }).catch(function() {});
})();
`
